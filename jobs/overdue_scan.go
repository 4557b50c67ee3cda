package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"

	"github.com/seth-vargas/biztime/internal/invoices"
	jobmetrics "github.com/seth-vargas/biztime/internal/jobs"
)

// OverdueLister finds unpaid invoices older than the given age.
type OverdueLister interface {
	Overdue(ctx context.Context, age time.Duration) ([]invoices.Invoice, error)
}

// OverdueScanJob logs overdue invoices and publishes their totals.
type OverdueScanJob struct {
	Invoices     OverdueLister
	DefaultAfter time.Duration
	Logger       *slog.Logger
	Metrics      *jobmetrics.Metrics
}

// NewOverdueScanJob initialises the overdue scan handler.
func NewOverdueScanJob(lister OverdueLister, defaultAfter time.Duration, logger *slog.Logger, metrics *jobmetrics.Metrics) *OverdueScanJob {
	return &OverdueScanJob{Invoices: lister, DefaultAfter: defaultAfter, Logger: logger, Metrics: metrics}
}

// Handle executes the overdue scan.
func (j *OverdueScanJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Invoices == nil {
		return errors.New("overdue scan: handler not configured")
	}
	var payload OverdueScanPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}
	after := time.Duration(payload.AfterHours) * time.Hour
	if after <= 0 {
		after = j.DefaultAfter
	}

	start := time.Now()
	tracker := j.Metrics.Track(TaskInvoiceOverdueScan)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.Duration("after", after))
	overdue, err := j.Invoices.Overdue(ctx, after)
	if err != nil {
		logger.Error("scan failed", slog.Any("error", err))
		return err
	}

	total := decimal.Zero
	for _, inv := range overdue {
		total = total.Add(inv.Amt)
		logger.Warn("invoice overdue",
			slog.Int64("invoice_id", inv.ID),
			slog.String("comp_code", inv.CompCode),
			slog.String("amt", inv.Amt.String()),
			slog.String("add_date", inv.AddDate.Format(time.DateOnly)),
		)
	}
	amount, _ := total.Float64()
	j.Metrics.SetOverdue(len(overdue), amount)

	logger.Info("completed overdue scan",
		slog.Int("overdue", len(overdue)),
		slog.String("total", total.String()),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (j *OverdueScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskInvoiceOverdueScan))
	}
	return slog.Default().With(slog.String("job", TaskInvoiceOverdueScan))
}
