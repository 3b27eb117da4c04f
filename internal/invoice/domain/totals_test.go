package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	parsed, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return parsed
}

func TestComputeTotals(t *testing.T) {
	t.Run("two units at ten with ten percent tax", func(t *testing.T) {
		items := []InvoiceItem{
			{Quantity: 2, Price: dec(t, "10"), TaxRate: dec(t, "10")},
		}

		totals := ComputeTotals(items, decimal.Zero, decimal.Zero, false, false)

		assert.True(t, totals.Subtotal.Equal(dec(t, "20")), "subtotal %s", totals.Subtotal)
		assert.True(t, totals.TaxTotal.Equal(dec(t, "2")), "tax total %s", totals.TaxTotal)
		assert.True(t, totals.Total.Equal(dec(t, "22")), "total %s", totals.Total)
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		items := []InvoiceItem{
			{Quantity: 3, Price: dec(t, "19.99"), TaxRate: dec(t, "7.5")},
			{Quantity: 1, Price: dec(t, "0.01"), TaxRate: dec(t, "0")},
		}

		first := ComputeTotals(items, dec(t, "5"), dec(t, "4.50"), true, true)
		second := ComputeTotals(items, dec(t, "5"), dec(t, "4.50"), true, true)

		assert.True(t, first.Total.Equal(second.Total))
		assert.True(t, first.Subtotal.Equal(second.Subtotal))
		assert.True(t, first.TaxTotal.Equal(second.TaxTotal))
		assert.True(t, first.Discount.Equal(second.Discount))
		assert.True(t, first.Shipping.Equal(second.Shipping))
	})

	t.Run("item order does not change totals", func(t *testing.T) {
		a := InvoiceItem{Quantity: 2, Price: dec(t, "10"), TaxRate: dec(t, "10")}
		b := InvoiceItem{Quantity: 5, Price: dec(t, "3.33"), TaxRate: dec(t, "20")}
		c := InvoiceItem{Quantity: 1, Price: dec(t, "100"), TaxRate: dec(t, "0")}

		forward := ComputeTotals([]InvoiceItem{a, b, c}, decimal.Zero, decimal.Zero, false, false)
		backward := ComputeTotals([]InvoiceItem{c, b, a}, decimal.Zero, decimal.Zero, false, false)

		assert.True(t, forward.Total.Equal(backward.Total))
		assert.True(t, forward.TaxTotal.Equal(backward.TaxTotal))
	})

	t.Run("discount is a percentage of the subtotal", func(t *testing.T) {
		items := []InvoiceItem{
			{Quantity: 1, Price: dec(t, "100"), TaxRate: dec(t, "0")},
		}

		totals := ComputeTotals(items, dec(t, "10"), decimal.Zero, false, true)

		assert.True(t, totals.Discount.Equal(dec(t, "10")), "discount %s", totals.Discount)
		assert.True(t, totals.Total.Equal(dec(t, "90")), "total %s", totals.Total)
	})

	t.Run("hidden discount and shipping contribute nothing", func(t *testing.T) {
		items := []InvoiceItem{
			{Quantity: 1, Price: dec(t, "50"), TaxRate: dec(t, "0")},
		}

		totals := ComputeTotals(items, dec(t, "10"), dec(t, "9.99"), false, false)

		assert.True(t, totals.Discount.IsZero())
		assert.True(t, totals.Shipping.IsZero())
		assert.True(t, totals.Total.Equal(dec(t, "50")))
	})

	t.Run("shipping added after discount", func(t *testing.T) {
		items := []InvoiceItem{
			{Quantity: 1, Price: dec(t, "100"), TaxRate: dec(t, "10")},
		}

		totals := ComputeTotals(items, dec(t, "10"), dec(t, "5"), true, true)

		// 100 - 10 + 10 + 5
		assert.True(t, totals.Total.Equal(dec(t, "105")), "total %s", totals.Total)
	})

	t.Run("no items yields zero totals", func(t *testing.T) {
		totals := ComputeTotals(nil, decimal.Zero, decimal.Zero, false, false)

		assert.True(t, totals.Subtotal.IsZero())
		assert.True(t, totals.TaxTotal.IsZero())
		assert.True(t, totals.Total.IsZero())
	})
}

func TestTotalsRound2(t *testing.T) {
	totals := Totals{
		Subtotal: dec(t, "16.665"),
		TaxTotal: dec(t, "1.2345"),
		Total:    dec(t, "17.8995"),
	}

	rounded := totals.Round2()

	assert.Equal(t, "16.67", rounded.Subtotal.StringFixed(2))
	assert.Equal(t, "1.23", rounded.TaxTotal.StringFixed(2))
	assert.Equal(t, "17.90", rounded.Total.StringFixed(2))

	// the original is untouched
	assert.Equal(t, "16.665", totals.Subtotal.String())
}
