package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the board column a task lives in
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// BoardColumns is the fixed column order of the task board. Rendering and
// drag-and-drop reconciliation both iterate this order.
var BoardColumns = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}

// ValidTaskStatus reports whether s is one of the board columns
func ValidTaskStatus(s TaskStatus) bool {
	for _, col := range BoardColumns {
		if s == col {
			return true
		}
	}
	return false
}

// Task represents a board task
type Task struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Status          TaskStatus `json:"status"`
	StartsAt        *time.Time `json:"starts_at,omitempty"`
	EndsAt          *time.Time `json:"ends_at,omitempty"`
	CalendarEventID *string    `json:"calendar_event_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
