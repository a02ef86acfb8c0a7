package workers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AlexTayron/task-habit/internal/queue"
	"github.com/AlexTayron/task-habit/internal/store"
)

// ImportWorker persists calendar-imported task drafts carried by queue jobs.
// The draft already has its document id assigned at import time; the worker's
// only responsibility is the durable write, retried with backoff on transient
// store failures.
type ImportWorker struct {
	tasks    store.TaskStore
	jobQueue queue.JobQueue
	logger   *zap.Logger
}

// NewImportWorker creates an import worker
func NewImportWorker(tasks store.TaskStore, jobQueue queue.JobQueue, logger *zap.Logger) *ImportWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportWorker{
		tasks:    tasks,
		jobQueue: jobQueue,
		logger:   logger,
	}
}

// ProcessJob dispatches a queue message and settles its acknowledgement
func (w *ImportWorker) ProcessJob(ctx context.Context, msg queue.MessageInterface) error {
	job := msg.GetJob()

	switch job.Type {
	case queue.JobTypeImportPersist:
		if err := w.processImportPersist(ctx, job); err != nil {
			return w.handleJobError(ctx, msg, job, err)
		}
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack job: %w", ackErr)
		}
		return nil

	default:
		if nackErr := msg.Nack(false); nackErr != nil { // Unknown job type, send to DLQ
			w.logger.Error("failed to nack unknown job type", zap.Error(nackErr))
		}
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

func (w *ImportWorker) processImportPersist(ctx context.Context, job *queue.Job) error {
	if job.Task == nil {
		return fmt.Errorf("task draft is required for import persist job")
	}
	if job.Task.UserID != job.UserID {
		return fmt.Errorf("task draft does not belong to job user")
	}

	if err := w.tasks.Create(ctx, job.Task); err != nil {
		return fmt.Errorf("failed to persist imported task: %w", err)
	}

	w.logger.Info("persisted imported task",
		zap.String("task_id", job.Task.ID.String()),
		zap.String("user_id", job.UserID.String()),
	)
	return nil
}

// handleJobError retries transient failures with backoff and dead-letters
// everything else. Validation failures never retry: the draft will not
// become valid on its own.
func (w *ImportWorker) handleJobError(ctx context.Context, msg queue.MessageInterface, job *queue.Job, err error) error {
	if store.IsValidation(err) {
		w.logger.Error("import job rejected by validation",
			zap.String("job_id", job.ID.String()), zap.Error(err))
		if nackErr := msg.Nack(false); nackErr != nil {
			w.logger.Error("failed to nack invalid job", zap.Error(nackErr))
		}
		return err
	}

	if job.CanRetry() {
		job.IncrementRetry()
		delay := retryDelay(job.RetryCount)
		w.logger.Warn("import job failed, re-enqueueing",
			zap.String("job_id", job.ID.String()),
			zap.Int("retry", job.RetryCount),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		if enqueueErr := w.jobQueue.EnqueueWithDelay(ctx, job, delay); enqueueErr != nil {
			// Could not re-enqueue; requeue the original delivery instead.
			if nackErr := msg.Nack(true); nackErr != nil {
				w.logger.Error("failed to requeue job", zap.Error(nackErr))
			}
			return fmt.Errorf("failed to re-enqueue job: %w", enqueueErr)
		}
		if ackErr := msg.Ack(); ackErr != nil {
			w.logger.Error("failed to ack re-enqueued job", zap.Error(ackErr))
		}
		return err
	}

	w.logger.Error("import job exhausted retries, sending to DLQ",
		zap.String("job_id", job.ID.String()), zap.Error(err))
	if nackErr := msg.Nack(false); nackErr != nil {
		w.logger.Error("failed to nack exhausted job", zap.Error(nackErr))
	}
	return err
}

// retryDelay backs off exponentially: 5s, 10s, 20s, ...
func retryDelay(retry int) time.Duration {
	delay := 5 * time.Second
	for i := 1; i < retry; i++ {
		delay *= 2
	}
	return delay
}
