package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FieldError is a header-level validation failure keyed by field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ItemError is a validation failure on one line item. Position is 1-based.
type ItemError struct {
	Position int    `json:"position"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

// ValidationResult is the structured outcome of validating a draft. Items is
// aligned with the draft's item slice (nil entry = valid row) so callers can
// correlate an error to its row.
type ValidationResult struct {
	Fields  []FieldError `json:"fields,omitempty"`
	General []string     `json:"general,omitempty"`
	Items   []*ItemError `json:"items,omitempty"`
}

// OK reports whether the draft is save-eligible.
func (r ValidationResult) OK() bool {
	if len(r.Fields) > 0 || len(r.General) > 0 {
		return false
	}
	for _, item := range r.Items {
		if item != nil {
			return false
		}
	}
	return true
}

// Validate checks a draft and returns every problem it finds. It never
// persists anything and has no side effects.
func Validate(d Draft) ValidationResult {
	var result ValidationResult

	required := []struct {
		field string
		value string
	}{
		{"company", d.Company},
		{"company_address", d.CompanyAddress},
		{"client", d.Client},
		{"client_address", d.ClientAddress},
		{"invoice_number", d.InvoiceNumber},
	}
	for _, req := range required {
		if strings.TrimSpace(req.value) == "" {
			result.Fields = append(result.Fields, FieldError{
				Field:   req.field,
				Message: fmt.Sprintf("%s is required", req.field),
			})
		}
	}

	if strings.TrimSpace(d.DueDate) == "" {
		result.Fields = append(result.Fields, FieldError{
			Field:   "due_date",
			Message: "due_date is required",
		})
	} else if _, err := NormalizeDueDate(d.DueDate); err != nil {
		result.Fields = append(result.Fields, FieldError{
			Field:   "due_date",
			Message: "due_date must be a valid date",
		})
	}

	if len(d.Items) == 0 {
		result.General = append(result.General, "at least one line item is required")
		return result
	}

	result.Items = make([]*ItemError, len(d.Items))
	for i, item := range d.Items {
		result.Items[i] = validateItem(i, item)
	}

	return result
}

// validateItem reports only the first failing check, in order: description,
// quantity, price, tax rate.
func validateItem(index int, item DraftItem) *ItemError {
	position := index + 1

	if strings.TrimSpace(item.Description) == "" {
		return &ItemError{
			Position: position,
			Field:    "description",
			Message:  fmt.Sprintf("item %d: description is required", position),
		}
	}
	if !validQuantity(item.Quantity) {
		return &ItemError{
			Position: position,
			Field:    "quantity",
			Message:  fmt.Sprintf("item %d: quantity must be a whole number greater than zero", position),
		}
	}
	if !validNumber(item.Price) {
		return &ItemError{
			Position: position,
			Field:    "price",
			Message:  fmt.Sprintf("item %d: price must be a non-negative number", position),
		}
	}
	if !validNumber(item.TaxRate) {
		return &ItemError{
			Position: position,
			Field:    "tax_rate",
			Message:  fmt.Sprintf("item %d: tax rate must be a non-negative number", position),
		}
	}
	return nil
}

// validNumber accepts empty input (deferred to the required checks) or any
// real number >= 0. Shared by the price and tax rate checks.
func validNumber(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return true
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return false
	}
	return parsed >= 0
}

// validQuantity accepts only whole numbers greater than zero. Quantities are
// stored as integers, so a fractional value can never round-trip intact.
func validQuantity(value string) bool {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return false
	}
	return parsed > 0 && parsed == math.Trunc(parsed)
}
