package queue

import (
	"time"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/google/uuid"
)

// JobType represents the type of job
type JobType string

const (
	// JobTypeImportPersist persists one calendar-imported task draft to the
	// store. The draft already carries its pre-assigned document id and is
	// already visible in the importer's in-memory state.
	JobTypeImportPersist JobType = "import_persist"
)

// Job represents a job in the queue
type Job struct {
	ID         uuid.UUID    `json:"id"`
	Type       JobType      `json:"type"`
	UserID     uuid.UUID    `json:"user_id"`
	Task       *models.Task `json:"task,omitempty"` // Import draft, for import_persist jobs
	CreatedAt  time.Time    `json:"created_at"`
	RetryCount int          `json:"retry_count"`
	MaxRetries int          `json:"max_retries"`
}

// NewImportPersistJob creates a job persisting one imported task draft
func NewImportPersistJob(userID uuid.UUID, task *models.Task) *Job {
	return &Job{
		ID:         uuid.New(),
		Type:       JobTypeImportPersist,
		UserID:     userID,
		Task:       task,
		CreatedAt:  time.Now(),
		RetryCount: 0,
		MaxRetries: 3,
	}
}

// CanRetry checks if the job can be retried
func (j *Job) CanRetry() bool {
	return j.RetryCount < j.MaxRetries
}

// IncrementRetry increments the retry count
func (j *Job) IncrementRetry() {
	j.RetryCount++
}
