// Package domain contains persistence models and the pure invoice logic:
// draft validation and decimal totals.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	default:
		return false
	}
}

// Currency is the invoice display currency.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

// Shipping is the optional shipping block of an invoice.
type Shipping struct {
	Recipient string          `json:"recipient"`
	Method    string          `json:"method"`
	Address1  string          `json:"address1"`
	Address2  string          `json:"address2"`
	City      string          `json:"city"`
	State     string          `json:"state"`
	Zip       string          `json:"zip"`
	Country   string          `json:"country"`
	Cost      decimal.Decimal `json:"cost"`
}

// TaxLine is one named tax definition attached to an invoice.
type TaxLine struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

// Invoice is the persisted invoice header. Subtotal, tax total and grand total
// are derived from the item set and never stored.
type Invoice struct {
	ID             snowflake.ID  `gorm:"primaryKey" json:"id"`
	UserID         snowflake.ID  `gorm:"not null;index" json:"user_id"`
	Company        string        `gorm:"type:text;not null" json:"company"`
	CompanyAddress string        `gorm:"type:text;not null" json:"company_address"`
	Client         string        `gorm:"type:text;not null" json:"client"`
	ClientAddress  string        `gorm:"type:text;not null" json:"client_address"`
	InvoiceNumber  string        `gorm:"type:text;not null" json:"invoice_number"`
	DueDate        string        `gorm:"type:text;not null" json:"due_date"` // normalized YYYY-MM-DD
	Notes          string        `gorm:"type:text" json:"notes"`
	Terms          string        `gorm:"type:text" json:"terms"`
	Logo           string        `gorm:"type:text" json:"logo"`
	LogoZoom       float64       `gorm:"not null;default:1" json:"logo_zoom"`
	Status         InvoiceStatus `gorm:"type:text;not null;default:'draft'" json:"status"`
	CustomerID     *snowflake.ID `gorm:"index" json:"customer_id,omitempty"`
	TemplateID     *snowflake.ID `gorm:"" json:"template_id,omitempty"`

	Currency datatypes.JSONType[Currency]  `gorm:"" json:"currency"`
	Shipping datatypes.JSONType[Shipping]  `gorm:"" json:"shipping"`
	Taxes    datatypes.JSONSlice[TaxLine]  `gorm:"" json:"taxes"`
	Discount decimal.Decimal               `gorm:"type:numeric(7,4);not null;default:0" json:"discount"`

	ShowShipping       bool `gorm:"not null;default:false" json:"show_shipping"`
	ShowDiscount       bool `gorm:"not null;default:false" json:"show_discount"`
	ShowTaxColumn      bool `gorm:"not null;default:false" json:"show_tax_column"`
	ShowSignature      bool `gorm:"not null;default:false" json:"show_signature"`
	ShowPaymentDetails bool `gorm:"not null;default:false" json:"show_payment_details"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Items []InvoiceItem `gorm:"-" json:"items"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is one billable row. Items belong to exactly one invoice and the
// full set is replaced on every save, so item IDs are not stable across saves.
type InvoiceItem struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceID   snowflake.ID    `gorm:"not null;index" json:"invoice_id"`
	Position    int             `gorm:"not null" json:"position"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"price"`
	TaxRate     decimal.Decimal `gorm:"type:numeric(7,4);not null;default:0" json:"tax_rate"`
	ProductID   *snowflake.ID   `gorm:"index" json:"product_id,omitempty"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }
