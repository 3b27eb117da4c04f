package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/billfold/billfold/pkg/db/pagination"
)

type ListInvoiceFilter struct {
	Status      *InvoiceStatus
	Client      string
	CustomerID  *snowflake.ID
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// Repository persists invoice headers and their item sets. Save replaces the
// full item set (delete then insert); callers wrap it in a transaction.
type Repository interface {
	Save(ctx context.Context, db *gorm.DB, invoice *Invoice, items []InvoiceItem) error
	FetchByID(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) (*Invoice, error)
	Delete(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) error
	List(ctx context.Context, db *gorm.DB, userID snowflake.ID, filter ListInvoiceFilter, page pagination.Pagination) ([]*Invoice, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, userID, id snowflake.ID, status InvoiceStatus) error
}
