package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/AlexTayron/task-habit/internal/models"
)

// CalendarConfigRepository handles the single calendar integration config row
type CalendarConfigRepository struct {
	db *DB
}

// NewCalendarConfigRepository creates a new calendar config repository
func NewCalendarConfigRepository(db *DB) *CalendarConfigRepository {
	return &CalendarConfigRepository{db: db}
}

// Get retrieves the calendar config. Returns nil when the integration has
// never been configured.
func (r *CalendarConfigRepository) Get(ctx context.Context) (*models.CalendarConfig, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT target_calendar_id, time_zone, import_window_days, created_at, updated_at
		FROM calendar_configs WHERE singleton
	`)
	c := &models.CalendarConfig{}
	err := row.Scan(&c.TargetCalendarID, &c.TimeZone, &c.ImportWindowDays, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get calendar config", err)
	}
	return c, nil
}

// Set upserts the calendar config
func (r *CalendarConfigRepository) Set(ctx context.Context, c *models.CalendarConfig) error {
	if strings.TrimSpace(c.TargetCalendarID) == "" {
		return &ValidationError{Field: "target_calendar_id", Reason: "cannot be empty"}
	}
	if c.TimeZone == "" {
		return &ValidationError{Field: "time_zone", Reason: "cannot be empty"}
	}
	if c.ImportWindowDays <= 0 {
		c.ImportWindowDays = models.DefaultImportWindowDays
	}

	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO calendar_configs (singleton, target_calendar_id, time_zone, import_window_days, created_at, updated_at)
		VALUES (TRUE, $1, $2, $3, $4, $5)
		ON CONFLICT (singleton) DO UPDATE SET
			target_calendar_id = EXCLUDED.target_calendar_id,
			time_zone = EXCLUDED.time_zone,
			import_window_days = EXCLUDED.import_window_days,
			updated_at = EXCLUDED.updated_at
	`, c.TargetCalendarID, c.TimeZone, c.ImportWindowDays, now, now)
	if err != nil {
		return storeErr("set calendar config", err)
	}
	return nil
}
