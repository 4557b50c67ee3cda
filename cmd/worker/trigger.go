package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/seth-vargas/biztime/internal/app"
	"github.com/seth-vargas/biztime/jobs"
)

// enqueuer is the subset of asynq.Client used to trigger one-off runs.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// buildTriggerTask maps a job name to a task with its default payload.
func buildTriggerTask(name string, cfg *app.Config) (*asynq.Task, error) {
	switch name {
	case jobs.TaskInvoiceOverdueScan, "overdue":
		return jobs.NewOverdueScanTask(cfg.OverdueAfter)
	case "":
		return nil, errors.New("usage: worker trigger <job>")
	default:
		return nil, fmt.Errorf("unsupported job %q", name)
	}
}

func trigger(ctx context.Context, client enqueuer, cfg *app.Config, args []string) (*asynq.TaskInfo, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	task, err := buildTriggerTask(name, cfg)
	if err != nil {
		return nil, err
	}
	return client.EnqueueContext(ctx, task, asynq.MaxRetry(3))
}

func runTrigger(ctx context.Context, redisOpts asynq.RedisClientOpt, cfg *app.Config, args []string, logger *slog.Logger) error {
	client := asynq.NewClient(redisOpts)
	defer client.Close()

	info, err := trigger(ctx, client, cfg, args)
	if err != nil {
		return err
	}
	logger.Info("enqueued job", slog.String("type", info.Type), slog.String("id", info.ID), slog.String("queue", info.Queue))
	return nil
}
