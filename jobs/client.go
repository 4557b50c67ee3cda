package jobs

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/seth-vargas/biztime/internal/invoices"
	"github.com/seth-vargas/biztime/internal/platform/cache"
)

// Client publishes invoice events onto the queue. It satisfies
// invoices.Notifier.
type Client struct {
	client *asynq.Client
}

// NewClient opens an asynq client against redisOpts.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// InvoicePaid enqueues TaskInvoicePaid for inv.
func (c *Client) InvoicePaid(ctx context.Context, inv invoices.Invoice) error {
	task, err := NewInvoicePaidTask(inv)
	if err != nil {
		return err
	}
	if _, err := c.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("jobs: enqueue paid invoice %d: %w", inv.ID, err)
	}
	return nil
}

// Close releases the Redis connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// RedisOpt converts a REDIS_ADDR value (host:port or redis:// URL) into
// asynq connection options.
func RedisOpt(addr string) (asynq.RedisClientOpt, error) {
	opts, err := cache.Options(addr)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}
	return asynq.RedisClientOpt{
		Addr:      opts.Addr,
		Username:  opts.Username,
		Password:  opts.Password,
		DB:        opts.DB,
		TLSConfig: opts.TLSConfig,
	}, nil
}
