// Package draft is the invoice editor's state-transition function. State is
// an immutable snapshot of the draft being assembled; Apply copies it and
// folds one action in. The action set is closed: each action is its own
// struct carrying only the fields it needs.
package draft

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/billfold/billfold/internal/customer/domain"
	invoicedomain "github.com/billfold/billfold/internal/invoice/domain"
	productdomain "github.com/billfold/billfold/internal/product/domain"
)

// State wraps the draft under edit.
type State struct {
	Draft invoicedomain.Draft
}

// Action is one editor event. Implementations are the only valid actions.
type Action interface {
	isAction()
}

// ItemField names an editable line item field.
type ItemField string

const (
	ItemDescription ItemField = "description"
	ItemQuantity    ItemField = "quantity"
	ItemPrice       ItemField = "price"
	ItemTaxRate     ItemField = "tax_rate"
)

// HeaderField names an editable header text field.
type HeaderField string

const (
	FieldCompany        HeaderField = "company"
	FieldCompanyAddress HeaderField = "company_address"
	FieldClient         HeaderField = "client"
	FieldClientAddress  HeaderField = "client_address"
	FieldInvoiceNumber  HeaderField = "invoice_number"
	FieldDueDate        HeaderField = "due_date"
	FieldNotes          HeaderField = "notes"
	FieldTerms          HeaderField = "terms"
	FieldDiscount       HeaderField = "discount"
	FieldLogo           HeaderField = "logo"
)

// Toggle names one of the display toggles.
type Toggle string

const (
	ToggleShipping       Toggle = "show_shipping"
	ToggleDiscount       Toggle = "show_discount"
	ToggleTaxColumn      Toggle = "show_tax_column"
	ToggleSignature      Toggle = "show_signature"
	TogglePaymentDetails Toggle = "show_payment_details"
)

// ShippingField names an editable shipping field.
type ShippingField string

const (
	ShippingRecipient ShippingField = "recipient"
	ShippingMethod    ShippingField = "method"
	ShippingAddress1  ShippingField = "address1"
	ShippingAddress2  ShippingField = "address2"
	ShippingCity      ShippingField = "city"
	ShippingState     ShippingField = "state"
	ShippingZip       ShippingField = "zip"
	ShippingCountry   ShippingField = "country"
	ShippingCost      ShippingField = "cost"
)

type AddItem struct{}

type UpdateItem struct {
	Index int
	Field ItemField
	Value string
}

type RemoveItem struct {
	Index int
}

type SetField struct {
	Field HeaderField
	Value string
}

type ToggleField struct {
	Field Toggle
}

type UpdateShipping struct {
	Field ShippingField
	Value string
}

type AddTax struct {
	ID string
}

type RemoveTax struct {
	ID string
}

type UpdateTaxName struct {
	ID   string
	Name string
}

type UpdateTaxRate struct {
	ID   string
	Rate string
}

// ApplyCustomer copies a customer's details into the client fields. Later
// customer edits never reach drafts that copied from it.
type ApplyCustomer struct {
	Customer domain.Customer
}

// ApplyProduct copies a product's defaults into one line item.
type ApplyProduct struct {
	Index   int
	Product productdomain.Product
}

func (AddItem) isAction()        {}
func (UpdateItem) isAction()     {}
func (RemoveItem) isAction()     {}
func (SetField) isAction()       {}
func (ToggleField) isAction()    {}
func (UpdateShipping) isAction() {}
func (AddTax) isAction()         {}
func (RemoveTax) isAction()      {}
func (UpdateTaxName) isAction()  {}
func (UpdateTaxRate) isAction()  {}
func (ApplyCustomer) isAction()  {}
func (ApplyProduct) isAction()   {}

// Apply folds one action into the state and returns the next state. Unknown
// indexes and tax ids are no-ops. The input state is never mutated.
func Apply(state State, action Action) State {
	next := clone(state)

	switch a := action.(type) {
	case AddItem:
		next.Draft.Items = append(next.Draft.Items, invoicedomain.DraftItem{TaxRate: "0"})

	case UpdateItem:
		if a.Index < 0 || a.Index >= len(next.Draft.Items) {
			return state
		}
		item := &next.Draft.Items[a.Index]
		switch a.Field {
		case ItemDescription:
			item.Description = a.Value
		case ItemQuantity:
			item.Quantity = a.Value
		case ItemPrice:
			item.Price = a.Value
		case ItemTaxRate:
			item.TaxRate = a.Value
		default:
			return state
		}

	case RemoveItem:
		if a.Index < 0 || a.Index >= len(next.Draft.Items) {
			return state
		}
		next.Draft.Items = append(next.Draft.Items[:a.Index], next.Draft.Items[a.Index+1:]...)

	case SetField:
		applyHeaderField(&next.Draft, a.Field, a.Value)

	case ToggleField:
		switch a.Field {
		case ToggleShipping:
			next.Draft.ShowShipping = !next.Draft.ShowShipping
		case ToggleDiscount:
			next.Draft.ShowDiscount = !next.Draft.ShowDiscount
		case ToggleTaxColumn:
			next.Draft.ShowTaxColumn = !next.Draft.ShowTaxColumn
		case ToggleSignature:
			next.Draft.ShowSignature = !next.Draft.ShowSignature
		case TogglePaymentDetails:
			next.Draft.ShowPaymentDetails = !next.Draft.ShowPaymentDetails
		default:
			return state
		}

	case UpdateShipping:
		applyShippingField(&next.Draft.Shipping, a.Field, a.Value)

	case AddTax:
		next.Draft.Taxes = append(next.Draft.Taxes, invoicedomain.TaxLine{ID: a.ID})

	case RemoveTax:
		for i, tax := range next.Draft.Taxes {
			if tax.ID == a.ID {
				next.Draft.Taxes = append(next.Draft.Taxes[:i], next.Draft.Taxes[i+1:]...)
				break
			}
		}

	case UpdateTaxName:
		for i := range next.Draft.Taxes {
			if next.Draft.Taxes[i].ID == a.ID {
				next.Draft.Taxes[i].Name = a.Name
				break
			}
		}

	case UpdateTaxRate:
		for i := range next.Draft.Taxes {
			if next.Draft.Taxes[i].ID == a.ID {
				next.Draft.Taxes[i].Rate = lenientRate(a.Rate)
				break
			}
		}

	case ApplyCustomer:
		next.Draft.CustomerID = a.Customer.ID.String()
		next.Draft.Client = a.Customer.Name
		next.Draft.ClientAddress = a.Customer.FullAddress()

	case ApplyProduct:
		if a.Index < 0 || a.Index >= len(next.Draft.Items) {
			return state
		}
		item := &next.Draft.Items[a.Index]
		item.ProductID = a.Product.ID.String()
		item.Description = a.Product.Name
		item.Price = a.Product.Price.String()
		item.TaxRate = a.Product.TaxRate.String()

	default:
		return state
	}

	return next
}

func applyHeaderField(d *invoicedomain.Draft, field HeaderField, value string) {
	switch field {
	case FieldCompany:
		d.Company = value
	case FieldCompanyAddress:
		d.CompanyAddress = value
	case FieldClient:
		d.Client = value
	case FieldClientAddress:
		d.ClientAddress = value
	case FieldInvoiceNumber:
		d.InvoiceNumber = value
	case FieldDueDate:
		d.DueDate = value
	case FieldNotes:
		d.Notes = value
	case FieldTerms:
		d.Terms = value
	case FieldDiscount:
		d.Discount = value
	case FieldLogo:
		d.Logo = value
	}
}

func applyShippingField(s *invoicedomain.Shipping, field ShippingField, value string) {
	switch field {
	case ShippingRecipient:
		s.Recipient = value
	case ShippingMethod:
		s.Method = value
	case ShippingAddress1:
		s.Address1 = value
	case ShippingAddress2:
		s.Address2 = value
	case ShippingCity:
		s.City = value
	case ShippingState:
		s.State = value
	case ShippingZip:
		s.Zip = value
	case ShippingCountry:
		s.Country = value
	case ShippingCost:
		s.Cost = lenientRate(value)
	}
}

func lenientRate(value string) decimal.Decimal {
	parsed, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero
	}
	return parsed
}

func clone(state State) State {
	next := state

	next.Draft.Items = make([]invoicedomain.DraftItem, len(state.Draft.Items))
	copy(next.Draft.Items, state.Draft.Items)

	next.Draft.Taxes = make([]invoicedomain.TaxLine, len(state.Draft.Taxes))
	copy(next.Draft.Taxes, state.Draft.Taxes)

	return next
}
