package models

import "time"

// CalendarConfig holds the external calendar integration settings. A single
// target calendar is configured for the whole deployment; per-user tokens are
// held in memory by the calendar session, never persisted here.
type CalendarConfig struct {
	TargetCalendarID string    `json:"target_calendar_id"`
	TimeZone         string    `json:"time_zone"`
	ImportWindowDays int       `json:"import_window_days"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DefaultImportWindowDays is the forward-looking window for event import
// when no explicit window is configured.
const DefaultImportWindowDays = 7
