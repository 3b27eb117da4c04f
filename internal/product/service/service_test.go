package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/billfold/billfold/internal/product/domain"
	"github.com/billfold/billfold/internal/usercontext"
	"github.com/billfold/billfold/pkg/db"
	"github.com/billfold/billfold/pkg/repository"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Product{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		Log:   zaptest.NewLogger(t),
		GenID: node,
		Repo:  repository.ProvideStore[domain.Product](conn),
	})
}

func userCtx(id int64) context.Context {
	return usercontext.WithUserID(context.Background(), snowflake.ID(id))
}

func TestCreateProduct(t *testing.T) {
	t.Run("parses price and tax rate", func(t *testing.T) {
		svc := newTestService(t)

		created, err := svc.Create(userCtx(1), domain.CreateProductRequest{
			Name:    "Support plan",
			Price:   "49.99",
			TaxRate: "20",
		})

		require.NoError(t, err)
		assert.Equal(t, "49.99", created.Price.String())
		assert.Equal(t, "20", created.TaxRate.String())
	})

	t.Run("empty amounts default to zero", func(t *testing.T) {
		svc := newTestService(t)

		created, err := svc.Create(userCtx(1), domain.CreateProductRequest{Name: "Freebie"})

		require.NoError(t, err)
		assert.True(t, created.Price.IsZero())
		assert.True(t, created.TaxRate.IsZero())
	})

	t.Run("rejects bad input", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.Create(userCtx(1), domain.CreateProductRequest{Name: ""})
		assert.ErrorIs(t, err, domain.ErrInvalidName)

		_, err = svc.Create(userCtx(1), domain.CreateProductRequest{Name: "x", Price: "abc"})
		assert.ErrorIs(t, err, domain.ErrInvalidPrice)

		_, err = svc.Create(userCtx(1), domain.CreateProductRequest{Name: "x", Price: "-1"})
		assert.ErrorIs(t, err, domain.ErrInvalidPrice)

		_, err = svc.Create(userCtx(1), domain.CreateProductRequest{Name: "x", TaxRate: "lots"})
		assert.ErrorIs(t, err, domain.ErrInvalidTaxRate)
	})
}

func TestUpdateProduct(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(userCtx(1), domain.CreateProductRequest{
		Name:     "Support plan",
		Price:    "49.99",
		Category: "services",
	})
	require.NoError(t, err)

	t.Run("partial update", func(t *testing.T) {
		price := "59.99"
		updated, err := svc.Update(userCtx(1), domain.UpdateProductRequest{
			ID:    created.ID.String(),
			Price: &price,
		})

		require.NoError(t, err)
		assert.Equal(t, "59.99", updated.Price.String())
		assert.Equal(t, "Support plan", updated.Name)
		assert.Equal(t, "services", updated.Category)
	})

	t.Run("foreign user gets not found", func(t *testing.T) {
		name := "Hijack"
		_, err := svc.Update(userCtx(2), domain.UpdateProductRequest{
			ID:   created.ID.String(),
			Name: &name,
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestListAndDeleteProduct(t *testing.T) {
	svc := newTestService(t)

	for _, seed := range []struct{ name, category string }{
		{"Support plan", "services"},
		{"Hosting", "infrastructure"},
		{"Audit", "services"},
	} {
		_, err := svc.Create(userCtx(1), domain.CreateProductRequest{Name: seed.name, Category: seed.category})
		require.NoError(t, err)
	}

	t.Run("category filter", func(t *testing.T) {
		resp, err := svc.List(userCtx(1), domain.ListProductRequest{Category: "services"})
		require.NoError(t, err)
		assert.Len(t, resp.Products, 2)
	})

	t.Run("scoped to the caller", func(t *testing.T) {
		resp, err := svc.List(userCtx(2), domain.ListProductRequest{})
		require.NoError(t, err)
		assert.Empty(t, resp.Products)
	})

	t.Run("delete is scoped", func(t *testing.T) {
		resp, err := svc.List(userCtx(1), domain.ListProductRequest{Name: "Hosting"})
		require.NoError(t, err)
		require.Len(t, resp.Products, 1)
		id := resp.Products[0].ID.String()

		assert.ErrorIs(t, svc.Delete(userCtx(2), id), domain.ErrNotFound)
		require.NoError(t, svc.Delete(userCtx(1), id))

		_, err = svc.GetByID(userCtx(1), id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
