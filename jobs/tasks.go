package jobs

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/seth-vargas/biztime/internal/invoices"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskInvoicePaid announces an invoice that moved from unpaid to paid.
	TaskInvoicePaid = "invoice:paid"
	// TaskInvoiceOverdueScan reports unpaid invoices older than a threshold.
	TaskInvoiceOverdueScan = "invoice:overdue_scan"
)

// InvoicePaidPayload describes a paid invoice.
type InvoicePaidPayload struct {
	EventID   string `json:"event_id"`
	InvoiceID int64  `json:"invoice_id"`
	CompCode  string `json:"comp_code"`
	Amt       string `json:"amt"`
	PaidDate  string `json:"paid_date"`
}

// NewInvoicePaidTask builds the notification task for a paid invoice.
func NewInvoicePaidTask(inv invoices.Invoice) (*asynq.Task, error) {
	if inv.PaidDate == nil {
		return nil, fmt.Errorf("jobs: invoice %d has no paid date", inv.ID)
	}
	view := invoices.NewView(inv)
	payload := InvoicePaidPayload{
		EventID:   uuid.NewString(),
		InvoiceID: inv.ID,
		CompCode:  inv.CompCode,
		Amt:       view.Amt.String(),
		PaidDate:  *view.PaidDate,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInvoicePaid, body, asynq.Queue(QueueDefault), asynq.MaxRetry(3)), nil
}

// OverdueScanPayload configures an overdue scan run.
type OverdueScanPayload struct {
	AfterHours int `json:"after_hours"`
}

// NewOverdueScanTask builds the periodic overdue scan task.
func NewOverdueScanTask(after time.Duration) (*asynq.Task, error) {
	body, err := json.Marshal(OverdueScanPayload{AfterHours: int(after / time.Hour)})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInvoiceOverdueScan, body, asynq.Queue(QueueDefault)), nil
}
