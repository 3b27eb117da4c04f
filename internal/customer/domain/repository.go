package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/billfold/billfold/pkg/db/pagination"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	Update(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) (*Customer, error)
	List(ctx context.Context, db *gorm.DB, userID snowflake.ID, filter ListCustomerFilter, page pagination.Pagination) ([]*Customer, error)
	Delete(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) error
}
