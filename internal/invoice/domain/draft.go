package domain

// Draft is the editable, not-yet-validated invoice shape as assembled by the
// editor. Numeric fields are user-entered text; validation decides whether
// they parse. A draft with an empty ID inserts, otherwise it updates.
type Draft struct {
	ID             string `json:"id"`
	Company        string `json:"company"`
	CompanyAddress string `json:"company_address"`
	Client         string `json:"client"`
	ClientAddress  string `json:"client_address"`
	InvoiceNumber  string `json:"invoice_number"`
	DueDate        string `json:"due_date"`
	Notes          string `json:"notes"`
	Terms          string `json:"terms"`
	Logo           string `json:"logo"`
	LogoZoom       float64 `json:"logo_zoom"`
	Status         string `json:"status"`
	CustomerID     string `json:"customer_id"`
	TemplateID     string `json:"template_id"`

	Currency Currency  `json:"currency"`
	Shipping Shipping  `json:"shipping"`
	Taxes    []TaxLine `json:"taxes"`
	Discount string    `json:"discount"`

	ShowShipping       bool `json:"show_shipping"`
	ShowDiscount       bool `json:"show_discount"`
	ShowTaxColumn      bool `json:"show_tax_column"`
	ShowSignature      bool `json:"show_signature"`
	ShowPaymentDetails bool `json:"show_payment_details"`

	Items []DraftItem `json:"items"`
}

// DraftItem is one editable line of a draft.
type DraftItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Price       string `json:"price"`
	TaxRate     string `json:"tax_rate"`
	ProductID   string `json:"product_id"`
}
