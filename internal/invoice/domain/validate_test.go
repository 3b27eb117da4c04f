package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() Draft {
	return Draft{
		Company:        "Acme Corp",
		CompanyAddress: "1 Main St",
		Client:         "Globex",
		ClientAddress:  "2 Side St",
		InvoiceNumber:  "INV-001",
		DueDate:        "2026-09-15",
		Items: []DraftItem{
			{Description: "Consulting", Quantity: "2", Price: "10", TaxRate: "10"},
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid draft passes", func(t *testing.T) {
		result := Validate(validDraft())
		assert.True(t, result.OK())
	})

	t.Run("missing company and no items yields exactly two errors", func(t *testing.T) {
		draft := validDraft()
		draft.Company = ""
		draft.Items = nil

		result := Validate(draft)

		require.False(t, result.OK())
		require.Len(t, result.Fields, 1)
		assert.Equal(t, "company", result.Fields[0].Field)
		require.Len(t, result.General, 1)
		assert.Empty(t, result.Items)
	})

	t.Run("every missing header field is reported", func(t *testing.T) {
		result := Validate(Draft{Items: []DraftItem{{Description: "x", Quantity: "1"}}})

		require.False(t, result.OK())
		fields := make([]string, 0, len(result.Fields))
		for _, f := range result.Fields {
			fields = append(fields, f.Field)
		}
		assert.Equal(t, []string{
			"company", "company_address", "client", "client_address",
			"invoice_number", "due_date",
		}, fields)
	})

	t.Run("unparseable due date is rejected", func(t *testing.T) {
		draft := validDraft()
		draft.DueDate = "next tuesday"

		result := Validate(draft)

		require.Len(t, result.Fields, 1)
		assert.Equal(t, "due_date", result.Fields[0].Field)
	})

	t.Run("zero quantity names the one-based position", func(t *testing.T) {
		draft := validDraft()
		draft.Items = []DraftItem{
			{Description: "ok", Quantity: "1", Price: "5"},
			{Description: "broken", Quantity: "0", Price: "5"},
		}

		result := Validate(draft)

		require.False(t, result.OK())
		require.Len(t, result.Items, 2)
		assert.Nil(t, result.Items[0])
		require.NotNil(t, result.Items[1])
		assert.Equal(t, 2, result.Items[1].Position)
		assert.Equal(t, "quantity", result.Items[1].Field)
	})

	t.Run("fractional quantity is rejected", func(t *testing.T) {
		draft := validDraft()
		draft.Items[0].Quantity = "2.5"

		result := Validate(draft)

		require.False(t, result.OK())
		require.Len(t, result.Items, 1)
		require.NotNil(t, result.Items[0])
		assert.Equal(t, "quantity", result.Items[0].Field)

		draft.Items[0].Quantity = "2.0"
		assert.True(t, Validate(draft).OK())
	})

	t.Run("later items are checked after an earlier failure", func(t *testing.T) {
		draft := validDraft()
		draft.Items = []DraftItem{
			{Description: "", Quantity: "1"},
			{Description: "ok", Quantity: "1", Price: "abc"},
		}

		result := Validate(draft)

		require.Len(t, result.Items, 2)
		require.NotNil(t, result.Items[0])
		assert.Equal(t, "description", result.Items[0].Field)
		require.NotNil(t, result.Items[1])
		assert.Equal(t, "price", result.Items[1].Field)
	})

	t.Run("item reports only its first failing check", func(t *testing.T) {
		draft := validDraft()
		draft.Items = []DraftItem{
			{Description: "", Quantity: "-1", Price: "-1", TaxRate: "-1"},
		}

		result := Validate(draft)

		require.Len(t, result.Items, 1)
		require.NotNil(t, result.Items[0])
		assert.Equal(t, "description", result.Items[0].Field)
	})

	t.Run("negative numbers are invalid", func(t *testing.T) {
		draft := validDraft()
		draft.Items[0].TaxRate = "-5"

		result := Validate(draft)

		require.Len(t, result.Items, 1)
		require.NotNil(t, result.Items[0])
		assert.Equal(t, "tax_rate", result.Items[0].Field)
	})

	t.Run("empty price and tax rate are deferred, empty quantity is not", func(t *testing.T) {
		draft := validDraft()
		draft.Items = []DraftItem{
			{Description: "svc", Quantity: "1", Price: "", TaxRate: ""},
		}
		assert.True(t, Validate(draft).OK())

		draft.Items[0].Quantity = ""
		result := Validate(draft)
		require.NotNil(t, result.Items[0])
		assert.Equal(t, "quantity", result.Items[0].Field)
	})

	t.Run("validation has no side effects on the draft", func(t *testing.T) {
		draft := validDraft()
		before := draft.Items[0]

		_ = Validate(draft)
		_ = Validate(draft)

		assert.Equal(t, before, draft.Items[0])
	})
}

func TestNormalizeDueDate(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"date only", "2026-09-15", "2026-09-15"},
		{"rfc3339", "2026-09-15T10:30:00Z", "2026-09-15"},
		{"datetime without zone", "2026-09-15T10:30:00", "2026-09-15"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeDueDate(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := NormalizeDueDate("15/09/2026")
	assert.Error(t, err)
}
