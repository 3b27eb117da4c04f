// Package migration keeps the schema in sync with the persistence models.
package migration

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authdomain "github.com/billfold/billfold/internal/auth/domain"
	customerdomain "github.com/billfold/billfold/internal/customer/domain"
	invoicedomain "github.com/billfold/billfold/internal/invoice/domain"
	productdomain "github.com/billfold/billfold/internal/product/domain"
)

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&authdomain.User{},
		&authdomain.Session{},
		&customerdomain.Customer{},
		&productdomain.Product{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
	}
}

// Run applies gorm auto-migration for all models.
func Run(db *gorm.DB, log *zap.Logger) error {
	log.Named("migration").Info("running schema migration")
	return db.AutoMigrate(Models()...)
}

var Module = fx.Module("migration",
	fx.Invoke(Run),
)
