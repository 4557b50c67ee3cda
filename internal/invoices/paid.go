package invoices

import "time"

// ApplyUpdate returns existing with req applied. Marking an unpaid invoice paid
// stamps PaidDate with today; marking it unpaid clears PaidDate; re-marking a
// paid invoice keeps its original PaidDate. An omitted field keeps its value.
func ApplyUpdate(existing Invoice, req UpdateRequest, today time.Time) Invoice {
	updated := existing
	if req.Amt != nil {
		updated.Amt = *req.Amt
	}
	if req.Paid == nil {
		return updated
	}

	updated.Paid = *req.Paid
	switch {
	case *req.Paid && existing.PaidDate == nil:
		paidOn := today
		updated.PaidDate = &paidOn
	case !*req.Paid:
		updated.PaidDate = nil
	}
	return updated
}

// BecamePaid reports whether the update moved the invoice from unpaid to paid.
func BecamePaid(before, after Invoice) bool {
	return before.PaidDate == nil && after.PaidDate != nil
}

// DateOf truncates t to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
