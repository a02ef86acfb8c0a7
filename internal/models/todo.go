package models

import (
	"time"

	"github.com/google/uuid"
)

// Todo represents a simple checklist item
type Todo struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Completed       bool      `json:"completed"`
	CalendarEventID *string   `json:"calendar_event_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
