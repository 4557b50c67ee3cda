package invoices

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a row of the invoices table. PaidDate is set exactly when Paid is true.
type Invoice struct {
	ID       int64
	CompCode string
	Amt      decimal.Decimal
	Paid     bool
	AddDate  time.Time
	PaidDate *time.Time
}

// Summary is the listing shape of an invoice.
type Summary struct {
	ID       int64  `json:"id"`
	CompCode string `json:"comp_code"`
}

// CompanyInfo is the owning company embedded in invoice detail responses.
type CompanyInfo struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}
