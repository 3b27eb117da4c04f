package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/billfold/billfold/internal/product/domain"
	"github.com/billfold/billfold/internal/usercontext"
	"github.com/billfold/billfold/pkg/db/option"
	"github.com/billfold/billfold/pkg/db/pagination"
	"github.com/billfold/billfold/pkg/repository"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  repository.Repository[domain.Product]
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  repository.Repository[domain.Product]
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProductRequest) (domain.Product, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return domain.Product{}, domain.ErrUnauthenticated
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Product{}, domain.ErrInvalidName
	}

	price, err := parseAmount(req.Price)
	if err != nil {
		return domain.Product{}, domain.ErrInvalidPrice
	}
	taxRate, err := parseAmount(req.TaxRate)
	if err != nil {
		return domain.Product{}, domain.ErrInvalidTaxRate
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:          s.genID.Generate(),
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Price:       price,
		TaxRate:     taxRate,
		Category:    strings.TrimSpace(req.Category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, &product); err != nil {
		return domain.Product{}, err
	}

	return product, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateProductRequest) (domain.Product, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return domain.Product{}, domain.ErrUnauthenticated
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Product{}, err
	}

	existing, err := s.repo.FindOne(ctx, &domain.Product{ID: id, UserID: userID})
	if err != nil {
		return domain.Product{}, err
	}
	if existing == nil {
		return domain.Product{}, domain.ErrNotFound
	}

	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		existing.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		price, err := parseAmount(*req.Price)
		if err != nil {
			return domain.Product{}, domain.ErrInvalidPrice
		}
		existing.Price = price
	}
	if req.TaxRate != nil {
		taxRate, err := parseAmount(*req.TaxRate)
		if err != nil {
			return domain.Product{}, domain.ErrInvalidTaxRate
		}
		existing.TaxRate = taxRate
	}
	if req.Category != nil {
		existing.Category = strings.TrimSpace(*req.Category)
	}

	if existing.Name == "" {
		return domain.Product{}, domain.ErrInvalidName
	}

	existing.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, existing.ID.String(), existing); err != nil {
		return domain.Product{}, err
	}

	return *existing, nil
}

func (s *Service) List(ctx context.Context, req domain.ListProductRequest) (domain.ListProductResponse, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return domain.ListProductResponse{}, domain.ErrUnauthenticated
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	query := domain.Product{
		UserID:   userID,
		Name:     strings.TrimSpace(req.Name),
		Category: strings.TrimSpace(req.Category),
	}

	items, err := s.repo.Find(ctx, &query,
		option.ApplyPagination(pagination.Pagination{
			PageToken: req.PageToken,
			PageSize:  pageSize,
		}),
		option.WithOrder("created_at desc, id desc"),
	)
	if err != nil {
		return domain.ListProductResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(product *domain.Product) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        product.ID.String(),
			CreatedAt: product.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		products = append(products, *item)
	}

	resp := domain.ListProductResponse{Products: products}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Product, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return domain.Product{}, domain.ErrUnauthenticated
	}

	productID, err := s.parseID(id)
	if err != nil {
		return domain.Product{}, err
	}

	item, err := s.repo.FindOne(ctx, &domain.Product{ID: productID, UserID: userID})
	if err != nil {
		return domain.Product{}, err
	}
	if item == nil {
		return domain.Product{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return domain.ErrUnauthenticated
	}

	productID, err := s.parseID(id)
	if err != nil {
		return err
	}

	item, err := s.repo.FindOne(ctx, &domain.Product{ID: productID, UserID: userID})
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, productID.String())
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func parseAmount(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsNegative() {
		return decimal.Zero, errNegativeAmount
	}
	return amount, nil
}

var errNegativeAmount = errors.New("negative amount")
