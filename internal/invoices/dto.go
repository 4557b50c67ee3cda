package invoices

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// CreateRequest is the body of POST /invoices.
type CreateRequest struct {
	CompCode string          `json:"comp_code" validate:"required"`
	Amt      decimal.Decimal `json:"amt" validate:"gt=0"`
}

// UpdateRequest is the body of PUT /invoices/{id}.
type UpdateRequest struct {
	Amt  *decimal.Decimal `json:"amt" validate:"omitempty,gt=0"`
	Paid *bool            `json:"paid"`
}

// View is the JSON representation of an invoice. Amounts render as numbers
// and dates as YYYY-MM-DD.
type View struct {
	ID       int64       `json:"id"`
	CompCode string      `json:"comp_code"`
	Amt      json.Number `json:"amt"`
	Paid     bool        `json:"paid"`
	AddDate  string      `json:"add_date"`
	PaidDate *string     `json:"paid_date"`
}

// DetailView is an invoice with its owning company.
type DetailView struct {
	View
	Company CompanyInfo `json:"company"`
}

// NewView maps an Invoice to its JSON representation.
func NewView(inv Invoice) View {
	v := View{
		ID:       inv.ID,
		CompCode: inv.CompCode,
		Amt:      json.Number(inv.Amt.String()),
		Paid:     inv.Paid,
		AddDate:  inv.AddDate.Format(dateLayout),
	}
	if inv.PaidDate != nil {
		paid := inv.PaidDate.Format(dateLayout)
		v.PaidDate = &paid
	}
	return v
}
