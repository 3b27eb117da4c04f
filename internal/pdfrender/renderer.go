// Package pdfrender turns a persisted invoice into a downloadable PDF.
package pdfrender

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/billfold/billfold/internal/invoice/domain"
)

type Renderer interface {
	RenderInvoice(ctx context.Context, invoice domain.Invoice, totals domain.Totals) (io.Reader, error)
}

type renderer struct{}

func New() Renderer {
	return &renderer{}
}

func (r *renderer) RenderInvoice(ctx context.Context, invoice domain.Invoice, totals domain.Totals) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	symbol := invoice.Currency.Data().Symbol
	money := func(amount decimal.Decimal) string {
		return symbol + amount.StringFixed(2)
	}

	m.AddRow(12,
		text.NewCol(12, "Invoice "+invoice.InvoiceNumber, props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(16,
		col.New(6).Add(
			text.New("Date due: "+invoice.DueDate, props.Text{Top: 0}),
			text.New("Status: "+string(invoice.Status), props.Text{Top: 4}),
		),
		col.New(6),
	)

	shipping := invoice.Shipping.Data()
	shipToCol := col.New(4)
	if invoice.ShowShipping {
		shipToCol = col.New(4).Add(
			text.New("Ship to", props.Text{Style: fontstyle.Bold}),
			text.New(shipping.Recipient, props.Text{Top: 5}),
			text.New(shippingAddress(shipping), props.Text{Top: 9}),
		)
	}

	m.AddRow(40,
		col.New(4).Add(
			text.New(invoice.Company, props.Text{Style: fontstyle.Bold}),
			text.New(invoice.CompanyAddress, props.Text{Top: 5}),
		),
		col.New(4).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold}),
			text.New(invoice.Client, props.Text{Top: 5}),
			text.New(invoice.ClientAddress, props.Text{Top: 9}),
		),
		shipToCol,
	)

	m.AddRow(15,
		text.NewCol(12, money(totals.Total)+" due "+invoice.DueDate, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Top:   5,
		}),
	)

	if invoice.ShowTaxColumn {
		m.AddRow(10,
			text.NewCol(5, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
			text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
			text.NewCol(1, "Tax %", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
			text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		)
	} else {
		m.AddRow(10,
			text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
			text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
			text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		)
	}

	for _, item := range invoice.Items {
		amount := item.Price.Mul(decimal.NewFromInt(item.Quantity))
		if invoice.ShowTaxColumn {
			m.AddRow(10,
				text.NewCol(5, item.Description, props.Text{Size: 9}),
				text.NewCol(2, fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(2, money(item.Price), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(1, item.TaxRate.String(), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(2, money(amount), props.Text{Size: 9, Align: align.Right}),
			)
		} else {
			m.AddRow(10,
				text.NewCol(6, item.Description, props.Text{Size: 9}),
				text.NewCol(2, fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(2, money(item.Price), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(2, money(amount), props.Text{Size: 9, Align: align.Right}),
			)
		}
	}

	addTotal := func(label string, amount decimal.Decimal, bold bool) {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		m.AddRow(8,
			col.New(8),
			text.NewCol(2, label, props.Text{Size: 9, Style: style}),
			text.NewCol(2, money(amount), props.Text{Size: 9, Style: style, Align: align.Right}),
		)
	}

	addTotal("Subtotal", totals.Subtotal, false)
	if invoice.ShowDiscount {
		addTotal("Discount", totals.Discount.Neg(), false)
	}
	addTotal("Tax", totals.TaxTotal, false)
	if invoice.ShowShipping {
		addTotal("Shipping", totals.Shipping, false)
	}
	addTotal("Total", totals.Total, true)

	if invoice.Notes != "" {
		m.AddRow(20,
			col.New(12).Add(
				text.New("Notes", props.Text{Style: fontstyle.Bold, Size: 9}),
				text.New(invoice.Notes, props.Text{Size: 9, Top: 4}),
			),
		)
	}
	if invoice.Terms != "" {
		m.AddRow(20,
			col.New(12).Add(
				text.New("Terms", props.Text{Style: fontstyle.Bold, Size: 9}),
				text.New(invoice.Terms, props.Text{Size: 9, Top: 4}),
			),
		)
	}
	if invoice.ShowSignature {
		m.AddRow(20,
			col.New(6),
			col.New(6).Add(
				text.New("____________________________", props.Text{Top: 8, Align: align.Right}),
				text.New("Signature", props.Text{Size: 8, Top: 13, Align: align.Right}),
			),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

func shippingAddress(s domain.Shipping) string {
	address := s.Address1
	if s.Address2 != "" {
		address += ", " + s.Address2
	}
	tail := joinNonEmpty(s.City, s.State, s.Zip, s.Country)
	if tail != "" {
		if address != "" {
			address += ", "
		}
		address += tail
	}
	return address
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += part
	}
	return out
}
