package queue

import (
	"testing"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/google/uuid"
)

func TestNewImportPersistJob(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	task := &models.Task{
		ID:     uuid.New(),
		UserID: userID,
		Title:  "Imported event",
	}

	job := NewImportPersistJob(userID, task)

	if job.ID == uuid.Nil {
		t.Error("Expected job ID to be set")
	}
	if job.Type != JobTypeImportPersist {
		t.Errorf("Expected job type to be %s, got %s", JobTypeImportPersist, job.Type)
	}
	if job.UserID != userID {
		t.Errorf("Expected user ID to be %s, got %s", userID, job.UserID)
	}
	if job.Task == nil || job.Task.ID != task.ID {
		t.Errorf("Expected task %s to be carried on the job, got %v", task.ID, job.Task)
	}
	if job.CreatedAt.IsZero() {
		t.Error("Expected created at to be set")
	}
	if job.RetryCount != 0 {
		t.Errorf("Expected retry count to be 0, got %d", job.RetryCount)
	}
	if job.MaxRetries != 3 {
		t.Errorf("Expected max retries to be 3, got %d", job.MaxRetries)
	}
}

func TestJob_CanRetry(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name       string
		retryCount int
		maxRetries int
		want       bool
	}{
		{
			name:       "can retry - no retries yet",
			retryCount: 0,
			maxRetries: 3,
			want:       true,
		},
		{
			name:       "can retry - one retry",
			retryCount: 1,
			maxRetries: 3,
			want:       true,
		},
		{
			name:       "can retry - max retries minus one",
			retryCount: 2,
			maxRetries: 3,
			want:       true,
		},
		{
			name:       "cannot retry - at max retries",
			retryCount: 3,
			maxRetries: 3,
			want:       false,
		},
		{
			name:       "cannot retry - exceeded max retries",
			retryCount: 4,
			maxRetries: 3,
			want:       false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			job := &Job{
				ID:         uuid.New(),
				Type:       JobTypeImportPersist,
				UserID:     userID,
				RetryCount: tt.retryCount,
				MaxRetries: tt.maxRetries,
			}
			got := job.CanRetry()
			if got != tt.want {
				t.Errorf("CanRetry() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJob_IncrementRetry(t *testing.T) {
	t.Parallel()

	job := &Job{
		ID:         uuid.New(),
		Type:       JobTypeImportPersist,
		UserID:     uuid.New(),
		RetryCount: 0,
		MaxRetries: 3,
	}

	for want := 1; want <= 3; want++ {
		job.IncrementRetry()
		if job.RetryCount != want {
			t.Errorf("Expected retry count to be %d after increment, got %d", want, job.RetryCount)
		}
	}

	if job.CanRetry() {
		t.Error("Expected job to be exhausted after reaching max retries")
	}
}
