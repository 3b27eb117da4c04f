package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "github.com/billfold/billfold/internal/auth/domain"
	"github.com/billfold/billfold/internal/config"
	invoicedomain "github.com/billfold/billfold/internal/invoice/domain"
	"github.com/billfold/billfold/internal/usercontext"
)

const testToken = "test-token"

type fakeAuthService struct{}

func (f *fakeAuthService) Register(ctx context.Context, req authdomain.RegisterRequest) (authdomain.AuthResponse, error) {
	_ = ctx
	_ = req
	return authdomain.AuthResponse{}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req authdomain.LoginRequest) (authdomain.AuthResponse, error) {
	_ = ctx
	_ = req
	return authdomain.AuthResponse{}, nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, token string) (authdomain.User, error) {
	_ = ctx
	if token != testToken {
		return authdomain.User{}, authdomain.ErrInvalidToken
	}
	return authdomain.User{ID: snowflake.ID(1)}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, token string) error {
	_ = ctx
	_ = token
	return nil
}

type fakeInvoiceService struct {
	saveCalls int
	saveResp  invoicedomain.SaveResponse
	saveErr   error
	sawUserID bool
}

func (f *fakeInvoiceService) Save(ctx context.Context, draft invoicedomain.Draft) (invoicedomain.SaveResponse, error) {
	f.saveCalls++
	_, f.sawUserID = usercontext.UserIDFromContext(ctx)
	_ = draft
	return f.saveResp, f.saveErr
}

func (f *fakeInvoiceService) GetByID(ctx context.Context, id string) (invoicedomain.GetInvoiceResponse, error) {
	_ = ctx
	_ = id
	return invoicedomain.GetInvoiceResponse{}, invoicedomain.ErrNotFound
}

func (f *fakeInvoiceService) List(ctx context.Context, req invoicedomain.ListInvoiceRequest) (invoicedomain.ListInvoiceResponse, error) {
	_ = ctx
	_ = req
	return invoicedomain.ListInvoiceResponse{}, nil
}

func (f *fakeInvoiceService) Delete(ctx context.Context, id string) error {
	_ = ctx
	_ = id
	return nil
}

func (f *fakeInvoiceService) UpdateStatus(ctx context.Context, id string, status invoicedomain.InvoiceStatus) (invoicedomain.Invoice, error) {
	_ = ctx
	_ = id
	_ = status
	return invoicedomain.Invoice{}, nil
}

func newTestServer(t *testing.T, invoiceSvc invoicedomain.Service) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	return NewServer(ServerParams{
		Gin:        engine,
		Cfg:        config.Config{AppName: "billfold"},
		Authsvc:    &fakeAuthService{},
		InvoiceSvc: invoiceSvc,
	})
}

func TestSaveInvoiceHandler(t *testing.T) {
	t.Run("missing bearer token is unauthorized", func(t *testing.T) {
		fake := &fakeInvoiceService{}
		srv := newTestServer(t, fake)

		req := httptest.NewRequest(http.MethodPost, "/api/invoices", bytes.NewBufferString(`{}`))
		rec := httptest.NewRecorder()
		srv.Engine().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Zero(t, fake.saveCalls)
	})

	t.Run("validation failure returns the result verbatim", func(t *testing.T) {
		fake := &fakeInvoiceService{
			saveResp: invoicedomain.SaveResponse{State: invoicedomain.SaveStateInvalid},
			saveErr: &invoicedomain.ValidationFailed{Result: invoicedomain.ValidationResult{
				Fields: []invoicedomain.FieldError{{Field: "company", Message: "company is required"}},
				Items:  []*invoicedomain.ItemError{nil, {Position: 2, Field: "quantity", Message: "item 2: quantity must be a whole number greater than zero"}},
			}},
		}
		srv := newTestServer(t, fake)

		req := httptest.NewRequest(http.MethodPost, "/api/invoices", bytes.NewBufferString(`{}`))
		req.Header.Set("Authorization", "Bearer "+testToken)
		rec := httptest.NewRecorder()
		srv.Engine().ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.True(t, fake.sawUserID, "save should run with the authenticated user in context")

		var body struct {
			Error struct {
				Type       string                          `json:"type"`
				Validation *invoicedomain.ValidationResult `json:"validation"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "validation_error", body.Error.Type)
		require.NotNil(t, body.Error.Validation)
		require.Len(t, body.Error.Validation.Fields, 1)
		assert.Equal(t, "company", body.Error.Validation.Fields[0].Field)
		require.Len(t, body.Error.Validation.Items, 2)
		assert.Nil(t, body.Error.Validation.Items[0])
		require.NotNil(t, body.Error.Validation.Items[1])
		assert.Equal(t, 2, body.Error.Validation.Items[1].Position)
	})

	t.Run("totals are rounded at the response boundary", func(t *testing.T) {
		fake := &fakeInvoiceService{
			saveResp: invoicedomain.SaveResponse{
				State: invoicedomain.SaveStatePersisted,
				Totals: invoicedomain.Totals{
					Subtotal: decimal.RequireFromString("16.665"),
					TaxTotal: decimal.RequireFromString("1.2345"),
					Total:    decimal.RequireFromString("17.8995"),
				},
			},
		}
		srv := newTestServer(t, fake)

		req := httptest.NewRequest(http.MethodPost, "/api/invoices", bytes.NewBufferString(`{}`))
		req.Header.Set("Authorization", "Bearer "+testToken)
		rec := httptest.NewRecorder()
		srv.Engine().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "16.67")
		assert.Contains(t, rec.Body.String(), "17.9")
		assert.NotContains(t, rec.Body.String(), "16.665")
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		fake := &fakeInvoiceService{}
		srv := newTestServer(t, fake)

		req := httptest.NewRequest(http.MethodPost, "/api/invoices", bytes.NewBufferString(`{"items":`))
		req.Header.Set("Authorization", "Bearer "+testToken)
		rec := httptest.NewRecorder()
		srv.Engine().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, fake.saveCalls)
	})
}
