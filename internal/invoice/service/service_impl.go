package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/billfold/billfold/internal/invoice/domain"
	"github.com/billfold/billfold/internal/usercontext"
	"github.com/billfold/billfold/pkg/db/pagination"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("invoice.service"),
		repo: p.Repo,
	}
}

// Save is the save pipeline. It refuses unauthenticated callers before any
// repository call, rejects invalid drafts without persisting anything, and
// otherwise writes header + items in one transaction and returns the
// canonical persisted record.
func (s *Service) Save(ctx context.Context, draft domain.Draft) (domain.SaveResponse, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return domain.SaveResponse{State: domain.SaveStateFailed}, domain.ErrUnauthenticated
	}

	result := domain.Validate(draft)
	if !result.OK() {
		return domain.SaveResponse{State: domain.SaveStateInvalid}, &domain.ValidationFailed{Result: result}
	}

	invoice, items, err := s.buildRecord(userID, draft)
	if err != nil {
		return domain.SaveResponse{State: domain.SaveStateFailed}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Save(ctx, tx, invoice, items)
	})
	if err != nil {
		s.log.Error("invoice save failed",
			zap.String("invoice_id", invoice.ID.String()),
			zap.Error(err),
		)
		return domain.SaveResponse{State: domain.SaveStateFailed}, err
	}

	persisted, err := s.repo.FetchByID(ctx, s.db, userID, invoice.ID)
	if err != nil {
		return domain.SaveResponse{State: domain.SaveStateFailed}, err
	}
	if persisted == nil {
		return domain.SaveResponse{State: domain.SaveStateFailed}, domain.ErrNotFound
	}

	return domain.SaveResponse{
		State:   domain.SaveStatePersisted,
		Invoice: *persisted,
		Totals:  domain.TotalsFor(*persisted),
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.GetInvoiceResponse, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return domain.GetInvoiceResponse{}, domain.ErrUnauthenticated
	}

	invoiceID, err := parseID(id)
	if err != nil {
		return domain.GetInvoiceResponse{}, err
	}

	invoice, err := s.repo.FetchByID(ctx, s.db, userID, invoiceID)
	if err != nil {
		return domain.GetInvoiceResponse{}, err
	}
	if invoice == nil {
		return domain.GetInvoiceResponse{}, domain.ErrNotFound
	}

	return domain.GetInvoiceResponse{
		Invoice: *invoice,
		Totals:  domain.TotalsFor(*invoice),
	}, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return domain.ListInvoiceResponse{}, domain.ErrUnauthenticated
	}

	filter := domain.ListInvoiceFilter{
		Status:      req.Status,
		Client:      strings.TrimSpace(req.Client),
		CreatedFrom: req.CreatedFrom,
		CreatedTo:   req.CreatedTo,
	}
	if trimmed := strings.TrimSpace(req.CustomerID); trimmed != "" {
		customerID, err := parseID(trimmed)
		if err != nil {
			return domain.ListInvoiceResponse{}, err
		}
		filter.CustomerID = &customerID
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, userID, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(invoice *domain.Invoice) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        invoice.ID.String(),
			CreatedAt: invoice.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	invoices := make([]domain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		invoices = append(invoices, *item)
	}

	resp := domain.ListInvoiceResponse{Invoices: invoices}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return domain.ErrUnauthenticated
	}

	invoiceID, err := parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Delete(ctx, tx, userID, invoiceID)
	})
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) (domain.Invoice, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return domain.Invoice{}, domain.ErrUnauthenticated
	}

	if !domain.ValidStatus(status) {
		return domain.Invoice{}, domain.ErrInvalidStatus
	}

	invoiceID, err := parseID(id)
	if err != nil {
		return domain.Invoice{}, err
	}

	if err := s.repo.UpdateStatus(ctx, s.db, userID, invoiceID, status); err != nil {
		return domain.Invoice{}, err
	}

	invoice, err := s.repo.FetchByID(ctx, s.db, userID, invoiceID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return *invoice, nil
}

// buildRecord turns a validated draft into storage rows. Due date is reduced
// to a bare calendar date; item tax rates default to 0, never null.
func (s *Service) buildRecord(userID snowflake.ID, draft domain.Draft) (*domain.Invoice, []domain.InvoiceItem, error) {
	var invoiceID snowflake.ID
	if trimmed := strings.TrimSpace(draft.ID); trimmed != "" {
		parsed, err := parseID(trimmed)
		if err != nil {
			return nil, nil, err
		}
		invoiceID = parsed
	}

	status := domain.InvoiceStatusDraft
	if trimmed := strings.TrimSpace(draft.Status); trimmed != "" {
		status = domain.InvoiceStatus(trimmed)
		if !domain.ValidStatus(status) {
			return nil, nil, domain.ErrInvalidStatus
		}
	}

	dueDate, err := domain.NormalizeDueDate(draft.DueDate)
	if err != nil {
		return nil, nil, err
	}

	var customerID, templateID *snowflake.ID
	if trimmed := strings.TrimSpace(draft.CustomerID); trimmed != "" {
		parsed, err := parseID(trimmed)
		if err != nil {
			return nil, nil, err
		}
		customerID = &parsed
	}
	if trimmed := strings.TrimSpace(draft.TemplateID); trimmed != "" {
		parsed, err := parseID(trimmed)
		if err != nil {
			return nil, nil, err
		}
		templateID = &parsed
	}

	logoZoom := draft.LogoZoom
	if logoZoom <= 0 {
		logoZoom = 1
	}

	now := time.Now().UTC()
	invoice := &domain.Invoice{
		ID:             invoiceID,
		UserID:         userID,
		Company:        strings.TrimSpace(draft.Company),
		CompanyAddress: strings.TrimSpace(draft.CompanyAddress),
		Client:         strings.TrimSpace(draft.Client),
		ClientAddress:  strings.TrimSpace(draft.ClientAddress),
		InvoiceNumber:  strings.TrimSpace(draft.InvoiceNumber),
		DueDate:        dueDate,
		Notes:          draft.Notes,
		Terms:          draft.Terms,
		Logo:           draft.Logo,
		LogoZoom:       logoZoom,
		Status:         status,
		CustomerID:     customerID,
		TemplateID:     templateID,
		Currency:       datatypes.NewJSONType(draft.Currency),
		Shipping:       datatypes.NewJSONType(draft.Shipping),
		Taxes:          datatypes.NewJSONSlice(draft.Taxes),
		Discount:       lenientDecimal(draft.Discount),

		ShowShipping:       draft.ShowShipping,
		ShowDiscount:       draft.ShowDiscount,
		ShowTaxColumn:      draft.ShowTaxColumn,
		ShowSignature:      draft.ShowSignature,
		ShowPaymentDetails: draft.ShowPaymentDetails,

		CreatedAt: now,
		UpdatedAt: now,
	}

	items := make([]domain.InvoiceItem, 0, len(draft.Items))
	for i, draftItem := range draft.Items {
		var productID *snowflake.ID
		if trimmed := strings.TrimSpace(draftItem.ProductID); trimmed != "" {
			parsed, err := parseID(trimmed)
			if err != nil {
				return nil, nil, err
			}
			productID = &parsed
		}

		items = append(items, domain.InvoiceItem{
			Position:    i,
			Description: strings.TrimSpace(draftItem.Description),
			Quantity:    lenientDecimal(draftItem.Quantity).IntPart(),
			Price:       lenientDecimal(draftItem.Price),
			TaxRate:     lenientDecimal(draftItem.TaxRate),
			ProductID:   productID,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	return invoice, items, nil
}

// lenientDecimal parses user-entered numbers; blank or unparseable input is 0.
func lenientDecimal(value string) decimal.Decimal {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero
	}
	parsed, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero
	}
	return parsed
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
