package companies

// Company is a row of the companies table.
type Company struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Summary is the listing shape of a company.
type Summary struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// InvoiceRef identifies an invoice owned by a company.
type InvoiceRef struct {
	ID       int64  `json:"id"`
	CompCode string `json:"comp_code"`
}

// Detail is a company with its industry names and invoice references.
type Detail struct {
	Company
	Industries []string     `json:"industries"`
	Invoices   []InvoiceRef `json:"invoices"`
}

// industryRow is one row of the company/industry left join.
type industryRow struct {
	Code         string
	Name         string
	Description  *string
	IndustryName *string
}
