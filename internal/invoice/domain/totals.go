package domain

import "github.com/shopspring/decimal"

// Totals are the derived aggregate amounts of an invoice. All math runs on
// decimals; rounding happens only at presentation time via Round2.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	TaxTotal decimal.Decimal `json:"tax_total"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Round2 returns a copy with every amount rounded to 2 decimal places.
func (t Totals) Round2() Totals {
	return Totals{
		Subtotal: t.Subtotal.Round(2),
		TaxTotal: t.TaxTotal.Round(2),
		Discount: t.Discount.Round(2),
		Shipping: t.Shipping.Round(2),
		Total:    t.Total.Round(2),
	}
}

var hundred = decimal.NewFromInt(100)

// ComputeTotals derives the invoice aggregates from its line items and the
// discount/shipping configuration. Pure and deterministic: identical input
// always yields identical output.
func ComputeTotals(items []InvoiceItem, discountPct decimal.Decimal, shippingCost decimal.Decimal, showShipping, showDiscount bool) Totals {
	var subtotal, taxTotal decimal.Decimal

	for _, item := range items {
		amount := decimal.NewFromInt(item.Quantity).Mul(item.Price)
		subtotal = subtotal.Add(amount)
		taxTotal = taxTotal.Add(amount.Mul(item.TaxRate).Div(hundred))
	}

	discount := decimal.Zero
	if showDiscount {
		discount = subtotal.Mul(discountPct).Div(hundred)
	}

	shipping := decimal.Zero
	if showShipping {
		shipping = shippingCost
	}

	return Totals{
		Subtotal: subtotal,
		TaxTotal: taxTotal,
		Discount: discount,
		Shipping: shipping,
		Total:    subtotal.Sub(discount).Add(taxTotal).Add(shipping),
	}
}

// TotalsFor computes the aggregates of a persisted invoice.
func TotalsFor(inv Invoice) Totals {
	return ComputeTotals(
		inv.Items,
		inv.Discount,
		inv.Shipping.Data().Cost,
		inv.ShowShipping,
		inv.ShowDiscount,
	)
}
