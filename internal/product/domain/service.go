package domain

import (
	"context"

	"github.com/billfold/billfold/pkg/db/pagination"
)

type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	TaxRate     string `json:"tax_rate"`
	Category    string `json:"category"`
}

type UpdateProductRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty"`
	TaxRate     *string `json:"tax_rate,omitempty"`
	Category    *string `json:"category,omitempty"`
}

type ListProductRequest struct {
	PageToken string
	PageSize  int
	Name      string
	Category  string
}

type ListProductResponse struct {
	pagination.PageInfo
	Products []Product `json:"products"`
}

type Service interface {
	Create(ctx context.Context, req CreateProductRequest) (Product, error)
	Update(ctx context.Context, req UpdateProductRequest) (Product, error)
	List(ctx context.Context, req ListProductRequest) (ListProductResponse, error)
	GetByID(ctx context.Context, id string) (Product, error)
	Delete(ctx context.Context, id string) error
}
