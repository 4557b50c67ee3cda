package invoices

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyUpdate(t *testing.T) {
	today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	unpaid := Invoice{ID: 1, CompCode: "apple", Amt: decimal.NewFromInt(100)}
	paid := Invoice{ID: 1, CompCode: "apple", Amt: decimal.NewFromInt(100), Paid: true, PaidDate: &earlier}

	cases := []struct {
		name     string
		existing Invoice
		req      UpdateRequest
		paid     bool
		paidDate *time.Time
		amt      string
	}{
		{"pay unpaid stamps today", unpaid, UpdateRequest{Paid: ptr(true)}, true, &today, "100"},
		{"repay keeps original date", paid, UpdateRequest{Paid: ptr(true)}, true, &earlier, "100"},
		{"unpay clears date", paid, UpdateRequest{Paid: ptr(false)}, false, nil, "100"},
		{"unpay unpaid stays clear", unpaid, UpdateRequest{Paid: ptr(false)}, false, nil, "100"},
		{"amount only keeps paid state", paid, UpdateRequest{Amt: ptr(decimal.RequireFromString("250.50"))}, true, &earlier, "250.5"},
		{"empty request is a no-op", unpaid, UpdateRequest{}, false, nil, "100"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplyUpdate(tc.existing, tc.req, today)
			assert.Equal(t, tc.paid, got.Paid)
			assert.Equal(t, tc.amt, got.Amt.String())
			if tc.paidDate == nil {
				assert.Nil(t, got.PaidDate)
				return
			}
			require.NotNil(t, got.PaidDate)
			assert.True(t, tc.paidDate.Equal(*got.PaidDate))
		})
	}
}

func TestApplyUpdateDoesNotAliasExisting(t *testing.T) {
	today := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	existing := Invoice{ID: 7}

	updated := ApplyUpdate(existing, UpdateRequest{Paid: ptr(true)}, today)

	assert.Nil(t, existing.PaidDate)
	assert.NotNil(t, updated.PaidDate)
}

func TestBecamePaid(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	assert.True(t, BecamePaid(Invoice{}, Invoice{PaidDate: &day}))
	assert.False(t, BecamePaid(Invoice{PaidDate: &day}, Invoice{PaidDate: &day}))
	assert.False(t, BecamePaid(Invoice{PaidDate: &day}, Invoice{}))
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	got := DateOf(time.Date(2026, 3, 15, 2, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), got)
}

func TestNewViewFormatsDatesAndAmount(t *testing.T) {
	paidOn := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	view := NewView(Invoice{
		ID:       3,
		CompCode: "ibm",
		Amt:      decimal.RequireFromString("400.00"),
		Paid:     true,
		AddDate:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		PaidDate: &paidOn,
	})

	assert.Equal(t, "400", view.Amt.String())
	assert.Equal(t, "2026-02-01", view.AddDate)
	require.NotNil(t, view.PaidDate)
	assert.Equal(t, "2026-03-14", *view.PaidDate)
}
