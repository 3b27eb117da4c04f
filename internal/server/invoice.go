package server

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/billfold/billfold/internal/export"
	invoicedomain "github.com/billfold/billfold/internal/invoice/domain"
)

const exportPageSize = 1000

func (s *Server) SaveInvoice(c *gin.Context) {
	var draft invoicedomain.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Save(c.Request.Context(), draft)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp.Totals = resp.Totals.Round2()
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	req, err := s.listInvoiceRequest(c)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      resp.Invoices,
		"page_info": resp.PageInfo,
	})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp.Totals = resp.Totals.Round2()
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) UpdateInvoiceStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.invoiceSvc.UpdateStatus(c.Request.Context(), c.Param("id"), invoicedomain.InvoiceStatus(body.Status))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) GetInvoicePDF(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.pdfRenderer.RenderInvoice(c.Request.Context(), resp.Invoice, resp.Totals.Round2())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="invoice-`+resp.Invoice.InvoiceNumber+`.pdf"`)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, doc)
}

// invoiceExportRow is the invoice export shape: the full record plus its
// derived totals, which are never stored.
type invoiceExportRow struct {
	invoicedomain.Invoice
	Totals invoicedomain.Totals `json:"totals"`
}

func (s *Server) ExportInvoices(c *gin.Context) {
	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		PageSize: exportPageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rows := make([]invoiceExportRow, 0, len(resp.Invoices))
	for _, inv := range resp.Invoices {
		rows = append(rows, invoiceExportRow{
			Invoice: inv,
			Totals:  invoicedomain.TotalsFor(inv).Round2(),
		})
	}

	writeExport(c, "invoices", export.InvoiceColumns, rows)
}

func (s *Server) listInvoiceRequest(c *gin.Context) (invoicedomain.ListInvoiceRequest, error) {
	pageSize, err := parseOptionalInt(c.Query("page_size"))
	if err != nil {
		return invoicedomain.ListInvoiceRequest{}, err
	}
	createdFrom, err := parseOptionalTime(c.Query("created_from"), false)
	if err != nil {
		return invoicedomain.ListInvoiceRequest{}, err
	}
	createdTo, err := parseOptionalTime(c.Query("created_to"), true)
	if err != nil {
		return invoicedomain.ListInvoiceRequest{}, err
	}

	req := invoicedomain.ListInvoiceRequest{
		PageToken:   c.Query("page_token"),
		PageSize:    pageSize,
		Client:      c.Query("client"),
		CustomerID:  c.Query("customer_id"),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	}

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := invoicedomain.InvoiceStatus(raw)
		if !invoicedomain.ValidStatus(status) {
			return invoicedomain.ListInvoiceRequest{}, invoicedomain.ErrInvalidStatus
		}
		req.Status = &status
	}

	return req, nil
}

// writeExport renders rows as a CSV or JSON file download. The format query
// parameter selects the encoding, defaulting to csv. Rows are encoded in full
// before any response bytes go out, so an encode failure still produces an
// error response instead of a truncated 200 body.
func writeExport(c *gin.Context, entity string, columns []export.Column, rows any) {
	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	if format == "" {
		format = "csv"
	}

	var (
		buf         bytes.Buffer
		contentType string
		err         error
	)
	switch format {
	case "csv":
		contentType = "text/csv"
		err = export.CSV(&buf, columns, rows)
	case "json":
		contentType = "application/json"
		err = export.JSON(&buf, rows)
	default:
		AbortWithError(c, invalidRequestError())
		return
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(entity, format)+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
