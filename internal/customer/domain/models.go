package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Customer is a reference entity: invoices copy its details at edit time and
// never reference it live.
type Customer struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID   snowflake.ID `gorm:"not null;index" json:"user_id"`
	Name     string       `gorm:"type:text;not null" json:"name"`
	Email    string       `gorm:"type:text;not null" json:"email"`
	Phone    string       `gorm:"type:text" json:"phone"`
	Address1 string       `gorm:"type:text" json:"address1"`
	Address2 string       `gorm:"type:text" json:"address2"`
	City     string       `gorm:"type:text" json:"city"`
	State    string       `gorm:"type:text" json:"state"`
	Zip      string       `gorm:"type:text" json:"zip"`
	Country  string       `gorm:"type:text" json:"country"`
	Currency string       `gorm:"type:text" json:"currency,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }

// FullAddress joins the populated address parts into one display line.
func (c Customer) FullAddress() string {
	parts := make([]string, 0, 6)
	for _, part := range []string{c.Address1, c.Address2, c.City, c.State, c.Zip, c.Country} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}
