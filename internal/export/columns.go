package export

// InvoiceColumns is the CSV layout for invoice exports.
var InvoiceColumns = []Column{
	{Header: "Invoice Number", Path: "invoice_number"},
	{Header: "Company", Path: "company"},
	{Header: "Client", Path: "client"},
	{Header: "Due Date", Path: "due_date"},
	{Header: "Status", Path: "status"},
	{Header: "Currency", Path: "currency.code"},
	{Header: "Discount", Path: "discount"},
	{Header: "Shipping Cost", Path: "shipping.cost"},
	{Header: "Subtotal", Path: "totals.subtotal"},
	{Header: "Tax", Path: "totals.tax_total"},
	{Header: "Total", Path: "totals.total"},
	{Header: "Created At", Path: "created_at"},
}

// CustomerColumns is the CSV layout for customer exports.
var CustomerColumns = []Column{
	{Header: "Name", Path: "name"},
	{Header: "Email", Path: "email"},
	{Header: "Phone", Path: "phone"},
	{Header: "Address", Path: "address1"},
	{Header: "City", Path: "city"},
	{Header: "State", Path: "state"},
	{Header: "Zip", Path: "zip"},
	{Header: "Country", Path: "country"},
	{Header: "Currency", Path: "currency"},
	{Header: "Created At", Path: "created_at"},
}

// ProductColumns is the CSV layout for product exports.
var ProductColumns = []Column{
	{Header: "Name", Path: "name"},
	{Header: "Description", Path: "description"},
	{Header: "Price", Path: "price"},
	{Header: "Tax Rate", Path: "tax_rate"},
	{Header: "Category", Path: "category"},
	{Header: "Created At", Path: "created_at"},
}
