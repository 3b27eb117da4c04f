package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/billfold/billfold/internal/customer/domain"
	"github.com/billfold/billfold/internal/usercontext"
	"github.com/billfold/billfold/pkg/db/pagination"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return domain.Customer{}, domain.ErrUnauthenticated
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.Customer{}, domain.ErrInvalidEmail
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:        s.genID.Generate(),
		UserID:    userID,
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Address1:  strings.TrimSpace(req.Address1),
		Address2:  strings.TrimSpace(req.Address2),
		City:      strings.TrimSpace(req.City),
		State:     strings.TrimSpace(req.State),
		Zip:       strings.TrimSpace(req.Zip),
		Country:   strings.TrimSpace(req.Country),
		Currency:  strings.TrimSpace(req.Currency),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		return domain.Customer{}, err
	}

	return customer, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCustomerRequest) (domain.Customer, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return domain.Customer{}, domain.ErrUnauthenticated
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Customer{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, userID, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if existing == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	applyString(&existing.Name, req.Name)
	applyString(&existing.Email, req.Email)
	applyString(&existing.Phone, req.Phone)
	applyString(&existing.Address1, req.Address1)
	applyString(&existing.Address2, req.Address2)
	applyString(&existing.City, req.City)
	applyString(&existing.State, req.State)
	applyString(&existing.Zip, req.Zip)
	applyString(&existing.Country, req.Country)
	applyString(&existing.Currency, req.Currency)

	if existing.Name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}
	if existing.Email == "" || !strings.Contains(existing.Email, "@") {
		return domain.Customer{}, domain.ErrInvalidEmail
	}

	existing.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, existing); err != nil {
		return domain.Customer{}, err
	}

	return *existing, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCustomerRequest) (domain.ListCustomerResponse, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return domain.ListCustomerResponse{}, domain.ErrUnauthenticated
	}

	filter := domain.ListCustomerFilter{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		CreatedFrom: req.CreatedFrom,
		CreatedTo:   req.CreatedTo,
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
		return domain.ListCustomerResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(customer *domain.Customer) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        customer.ID.String(),
			CreatedAt: customer.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	customers := make([]domain.Customer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		customers = append(customers, *item)
	}

	resp := domain.ListCustomerResponse{Customers: customers}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return domain.Customer{}, domain.ErrUnauthenticated
	}

	customerID, err := s.parseID(id)
	if err != nil {
		return domain.Customer{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, userID, customerID)
	if err != nil {
		return domain.Customer{}, err
	}
	if item == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return domain.ErrUnauthenticated
	}

	customerID, err := s.parseID(id)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, s.db, userID, customerID)
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
