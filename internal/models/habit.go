package models

import (
	"time"

	"github.com/google/uuid"
)

// HabitFrequency represents how often a habit recurs
type HabitFrequency string

const (
	HabitFrequencyDaily   HabitFrequency = "daily"
	HabitFrequencyWeekly  HabitFrequency = "weekly"
	HabitFrequencyMonthly HabitFrequency = "monthly"
)

// ValidHabitFrequency reports whether f is a known frequency
func ValidHabitFrequency(f HabitFrequency) bool {
	switch f {
	case HabitFrequencyDaily, HabitFrequencyWeekly, HabitFrequencyMonthly:
		return true
	}
	return false
}

// HabitGoalType is the unit a habit's goal is measured in. The set is open:
// these constants cover the built-in choices but any non-empty string is
// accepted.
type HabitGoalType string

const (
	GoalTypeChapters HabitGoalType = "chapters"
	GoalTypePages    HabitGoalType = "pages"
	GoalTypeMinutes  HabitGoalType = "minutes"
	GoalTypeLiters   HabitGoalType = "liters"
	GoalTypeOther    HabitGoalType = "other"
)

// Habit represents a recurring habit with a numeric goal
type Habit struct {
	ID              uuid.UUID      `json:"id"`
	UserID          uuid.UUID      `json:"user_id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	GoalType        HabitGoalType  `json:"goal_type"`
	GoalTarget      float64        `json:"goal_target"`
	Progress        float64        `json:"progress"`
	Frequency       HabitFrequency `json:"frequency"`
	PreferredTime   *string        `json:"preferred_time,omitempty"`
	CalendarEventID *string        `json:"calendar_event_id,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// HabitSession records progress against a habit. Sessions are immutable once
// created; they exist only to justify a progress increment on their habit.
type HabitSession struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	HabitID    uuid.UUID `json:"habit_id"`
	Quantity   float64   `json:"quantity"`
	Completed  bool      `json:"completed"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}
