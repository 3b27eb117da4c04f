package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/billfold/billfold/internal/customer/domain"
	"github.com/billfold/billfold/internal/customer/repository"
	"github.com/billfold/billfold/internal/usercontext"
	"github.com/billfold/billfold/pkg/db"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Customer{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    conn,
		Log:   zaptest.NewLogger(t),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func userCtx(id int64) context.Context {
	return usercontext.WithUserID(context.Background(), snowflake.ID(id))
}

func TestCreate(t *testing.T) {
	t.Run("requires an authenticated caller", func(t *testing.T) {
		svc := newTestService(t)
		_, err := svc.Create(context.Background(), domain.CreateCustomerRequest{Name: "Globex", Email: "g@globex.com"})
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("rejects blank name and bad email", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.Create(userCtx(1), domain.CreateCustomerRequest{Name: "  ", Email: "g@globex.com"})
		assert.ErrorIs(t, err, domain.ErrInvalidName)

		_, err = svc.Create(userCtx(1), domain.CreateCustomerRequest{Name: "Globex", Email: "globex.com"})
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})

	t.Run("trims and persists", func(t *testing.T) {
		svc := newTestService(t)

		created, err := svc.Create(userCtx(1), domain.CreateCustomerRequest{
			Name:  "  Globex  ",
			Email: " g@globex.com ",
			City:  "Springfield",
		})

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Globex", created.Name)
		assert.Equal(t, "g@globex.com", created.Email)

		fetched, err := svc.GetByID(userCtx(1), created.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "Springfield", fetched.City)
	})
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(userCtx(1), domain.CreateCustomerRequest{
		Name:  "Globex",
		Email: "g@globex.com",
		Phone: "555-0100",
	})
	require.NoError(t, err)

	t.Run("only provided fields change", func(t *testing.T) {
		city := "Shelbyville"
		updated, err := svc.Update(userCtx(1), domain.UpdateCustomerRequest{
			ID:   created.ID.String(),
			City: &city,
		})

		require.NoError(t, err)
		assert.Equal(t, "Shelbyville", updated.City)
		assert.Equal(t, "Globex", updated.Name)
		assert.Equal(t, "555-0100", updated.Phone)
	})

	t.Run("cannot blank out the name", func(t *testing.T) {
		blank := ""
		_, err := svc.Update(userCtx(1), domain.UpdateCustomerRequest{
			ID:   created.ID.String(),
			Name: &blank,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidName)
	})

	t.Run("foreign user gets not found", func(t *testing.T) {
		name := "Hijack"
		_, err := svc.Update(userCtx(2), domain.UpdateCustomerRequest{
			ID:   created.ID.String(),
			Name: &name,
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestListAndDelete(t *testing.T) {
	svc := newTestService(t)

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		_, err := svc.Create(userCtx(1), domain.CreateCustomerRequest{
			Name:  name,
			Email: name + "@example.com",
		})
		require.NoError(t, err)
	}

	t.Run("scoped to the caller", func(t *testing.T) {
		resp, err := svc.List(userCtx(1), domain.ListCustomerRequest{})
		require.NoError(t, err)
		assert.Len(t, resp.Customers, 3)

		other, err := svc.List(userCtx(2), domain.ListCustomerRequest{})
		require.NoError(t, err)
		assert.Empty(t, other.Customers)
	})

	t.Run("name filter", func(t *testing.T) {
		resp, err := svc.List(userCtx(1), domain.ListCustomerRequest{Name: "Beta"})
		require.NoError(t, err)
		require.Len(t, resp.Customers, 1)
		assert.Equal(t, "Beta", resp.Customers[0].Name)
	})

	t.Run("delete is scoped", func(t *testing.T) {
		resp, err := svc.List(userCtx(1), domain.ListCustomerRequest{Name: "Alpha"})
		require.NoError(t, err)
		require.Len(t, resp.Customers, 1)
		id := resp.Customers[0].ID.String()

		assert.ErrorIs(t, svc.Delete(userCtx(2), id), domain.ErrNotFound)
		require.NoError(t, svc.Delete(userCtx(1), id))

		_, err = svc.GetByID(userCtx(1), id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
