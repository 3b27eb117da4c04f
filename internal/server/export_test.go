package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customerdomain "github.com/billfold/billfold/internal/customer/domain"
	"github.com/billfold/billfold/internal/export"
)

func exportEngine(rows any) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())
	engine.GET("/export", func(c *gin.Context) {
		writeExport(c, "customers", export.CustomerColumns, rows)
	})
	return engine
}

func TestWriteExport(t *testing.T) {
	rows := []customerdomain.Customer{
		{Name: "Globex", Email: "g@globex.com", City: "Springfield"},
	}

	t.Run("csv download", func(t *testing.T) {
		engine := exportEngine(rows)

		req := httptest.NewRequest(http.MethodGet, "/export", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="customers-export.csv"`)

		lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[1], "Globex")
	})

	t.Run("json download", func(t *testing.T) {
		engine := exportEngine(rows)

		req := httptest.NewRequest(http.MethodGet, "/export?format=json", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		assert.Contains(t, rec.Body.String(), `"Globex"`)
	})

	t.Run("encode failure is an error response, not a truncated download", func(t *testing.T) {
		engine := exportEngine([]chan int{make(chan int)})

		req := httptest.NewRequest(http.MethodGet, "/export", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Empty(t, rec.Header().Get("Content-Disposition"))
		assert.Contains(t, rec.Body.String(), "internal_error")
	})

	t.Run("unknown format is rejected", func(t *testing.T) {
		engine := exportEngine(rows)

		req := httptest.NewRequest(http.MethodGet, "/export?format=xml", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
