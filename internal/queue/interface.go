package queue

import (
	"context"
	"time"
)

// MessageInterface represents a message taken from the queue
type MessageInterface interface {
	GetJob() *Job
	Ack() error
	Nack(requeue bool) error
}

// JobQueue defines the interface for job queue implementations
type JobQueue interface {
	// Enqueue adds a job to the queue
	Enqueue(ctx context.Context, job *Job) error

	// EnqueueWithDelay adds a job delivered after the given delay
	EnqueueWithDelay(ctx context.Context, job *Job, delay time.Duration) error

	// Dequeue removes and returns the next message, or nil when the queue
	// is empty
	Dequeue(ctx context.Context) (MessageInterface, error)

	// Consume delivers messages on the returned channel until ctx is
	// cancelled
	Consume(ctx context.Context, prefetchCount int) (<-chan MessageInterface, <-chan error, error)

	// HealthCheck verifies the queue connection is alive
	HealthCheck(ctx context.Context) error

	// Close closes the queue connection
	Close() error
}

var _ JobQueue = (*RabbitMQQueue)(nil)
