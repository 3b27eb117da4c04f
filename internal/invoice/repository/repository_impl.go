package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/billfold/billfold/internal/invoice/domain"
	"github.com/billfold/billfold/pkg/db/option"
	"github.com/billfold/billfold/pkg/db/pagination"
)

type repo struct {
	genID *snowflake.Node
}

func Provide(genID *snowflake.Node) domain.Repository {
	return &repo{genID: genID}
}

// Save writes the header, then replaces the full item set. The header write
// always precedes item replacement; no item write happens if it fails. A
// zero invoice ID inserts and assigns a generated one. The caller supplies
// the transaction handle.
func (r *repo) Save(ctx context.Context, db *gorm.DB, invoice *domain.Invoice, items []domain.InvoiceItem) error {
	updating := invoice.ID != 0

	if !updating {
		invoice.ID = r.genID.Generate()
		if err := db.WithContext(ctx).Create(invoice).Error; err != nil {
			return err
		}
	} else {
		result := db.WithContext(ctx).
			Model(&domain.Invoice{}).
			Where("id = ? AND user_id = ?", invoice.ID, invoice.UserID).
			Select(
				"company", "company_address", "client", "client_address",
				"invoice_number", "due_date", "notes", "terms", "logo", "logo_zoom",
				"status", "customer_id", "template_id", "currency", "shipping",
				"taxes", "discount", "show_shipping", "show_discount",
				"show_tax_column", "show_signature", "show_payment_details",
				"updated_at",
			).
			Updates(invoice)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		if err := db.WithContext(ctx).Exec(
			`DELETE FROM invoice_items WHERE invoice_id = ?`, invoice.ID,
		).Error; err != nil {
			return err
		}
	}

	for i := range items {
		items[i].ID = r.genID.Generate()
		items[i].InvoiceID = invoice.ID
	}
	if len(items) > 0 {
		if err := db.WithContext(ctx).Create(&items).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *repo) FetchByID(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&invoice).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	var items []domain.InvoiceItem
	if err := db.WithContext(ctx).
		Where("invoice_id = ?", id).
		Order("position asc, id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	invoice.Items = items

	return &invoice, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) error {
	result := db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&domain.Invoice{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return db.WithContext(ctx).Exec(
		`DELETE FROM invoice_items WHERE invoice_id = ?`, id,
	).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, userID snowflake.ID, filter domain.ListInvoiceFilter, page pagination.Pagination) ([]*domain.Invoice, error) {
	var invoices []*domain.Invoice
	stmt := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("user_id = ?", userID)
	if filter.Status != nil {
		stmt = stmt.Where("status = ?", *filter.Status)
	}
	if filter.Client != "" {
		stmt = stmt.Where("client = ?", filter.Client)
	}
	if filter.CustomerID != nil {
		stmt = stmt.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.CreatedFrom != nil {
		stmt = stmt.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		stmt = stmt.Where("created_at <= ?", *filter.CreatedTo)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, db, invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// loadItems attaches line items to each invoice with a single batched query.
func (r *repo) loadItems(ctx context.Context, db *gorm.DB, invoices []*domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	ids := make([]snowflake.ID, 0, len(invoices))
	for _, invoice := range invoices {
		ids = append(ids, invoice.ID)
	}

	var items []domain.InvoiceItem
	if err := db.WithContext(ctx).
		Where("invoice_id IN ?", ids).
		Order("position asc, id asc").
		Find(&items).Error; err != nil {
		return err
	}

	byInvoice := make(map[snowflake.ID][]domain.InvoiceItem, len(invoices))
	for _, item := range items {
		byInvoice[item.InvoiceID] = append(byInvoice[item.InvoiceID], item)
	}
	for _, invoice := range invoices {
		invoice.Items = byInvoice[invoice.ID]
	}
	return nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, userID, id snowflake.ID, status domain.InvoiceStatus) error {
	result := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
