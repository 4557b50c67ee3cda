package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	jobmetrics "github.com/seth-vargas/biztime/internal/jobs"
)

const processedKeyPrefix = "biztime:jobs:invoice_paid:"

// InvoicePaidJob records invoice-paid notifications. Retries of an event that
// was already handled are dropped.
type InvoicePaidJob struct {
	Redis   *redis.Client
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	// DedupeTTL bounds how long processed event IDs are remembered.
	DedupeTTL time.Duration
}

// NewInvoicePaidJob initialises the handler. client may be nil, which turns
// off deduplication.
func NewInvoicePaidJob(client *redis.Client, logger *slog.Logger, metrics *jobmetrics.Metrics) *InvoicePaidJob {
	return &InvoicePaidJob{Redis: client, Logger: logger, Metrics: metrics, DedupeTTL: 24 * time.Hour}
}

// Handle processes TaskInvoicePaid tasks.
func (j *InvoicePaidJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil {
		return errors.New("invoice paid: handler not configured")
	}
	var payload InvoicePaidPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil || payload.InvoiceID == 0 {
		return asynq.SkipRetry
	}

	tracker := j.Metrics.Track(TaskInvoicePaid)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(
		slog.String("event_id", payload.EventID),
		slog.Int64("invoice_id", payload.InvoiceID),
	)

	first, err := j.claim(ctx, payload.EventID)
	if err != nil {
		logger.Error("claim event", slog.Any("error", err))
		return err
	}
	if !first {
		logger.Debug("duplicate invoice paid event skipped")
		return nil
	}

	logger.Info("invoice paid",
		slog.String("comp_code", payload.CompCode),
		slog.String("amt", payload.Amt),
		slog.String("paid_date", payload.PaidDate),
	)
	j.Metrics.IncPaid()
	return nil
}

func (j *InvoicePaidJob) claim(ctx context.Context, eventID string) (bool, error) {
	if j.Redis == nil || eventID == "" {
		return true, nil
	}
	ttl := j.DedupeTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return j.Redis.SetNX(ctx, processedKeyPrefix+eventID, 1, ttl).Result()
}

func (j *InvoicePaidJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskInvoicePaid))
	}
	return slog.Default().With(slog.String("job", TaskInvoicePaid))
}
