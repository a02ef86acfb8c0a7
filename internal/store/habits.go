package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/google/uuid"
)

// HabitRepository handles habit persistence
type HabitRepository struct {
	db *DB
}

// NewHabitRepository creates a new habit repository
func NewHabitRepository(db *DB) *HabitRepository {
	return &HabitRepository{db: db}
}

// Create validates required fields and inserts the habit
func (r *HabitRepository) Create(ctx context.Context, habit *models.Habit) error {
	if habit.Title == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if habit.GoalTarget <= 0 {
		return &ValidationError{Field: "goal_target", Reason: "must be greater than zero"}
	}
	if habit.GoalType == "" {
		return &ValidationError{Field: "goal_type", Reason: "is required"}
	}
	if habit.Frequency == "" {
		return &ValidationError{Field: "frequency", Reason: "is required"}
	}
	if !models.ValidHabitFrequency(habit.Frequency) {
		return &ValidationError{Field: "frequency", Reason: fmt.Sprintf("%q is not daily, weekly or monthly", habit.Frequency)}
	}
	if habit.Progress < 0 {
		return &ValidationError{Field: "progress", Reason: "must not be negative"}
	}

	if habit.ID == uuid.Nil {
		habit.ID = uuid.New()
	}

	query := `
		INSERT INTO habits (id, user_id, title, description, goal_type, goal_target, progress, frequency, preferred_time, calendar_event_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query,
		habit.ID,
		habit.UserID,
		habit.Title,
		habit.Description,
		habit.GoalType,
		habit.GoalTarget,
		habit.Progress,
		habit.Frequency,
		habit.PreferredTime,
		habit.CalendarEventID,
		now,
		now,
	).Scan(&habit.CreatedAt, &habit.UpdatedAt)

	if err != nil {
		return storeErr("create habit", err)
	}

	return nil
}

// GetByUserID retrieves all habits for a user ordered by creation time
func (r *HabitRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Habit, error) {
	query := `
		SELECT id, user_id, title, description, goal_type, goal_target, progress, frequency, preferred_time, calendar_event_id, created_at, updated_at
		FROM habits
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, storeErr("list habits", err)
	}
	defer rows.Close()

	var habits []*models.Habit
	for rows.Next() {
		habit := &models.Habit{}
		var preferredTime, eventID sql.NullString

		err := rows.Scan(
			&habit.ID,
			&habit.UserID,
			&habit.Title,
			&habit.Description,
			&habit.GoalType,
			&habit.GoalTarget,
			&habit.Progress,
			&habit.Frequency,
			&preferredTime,
			&eventID,
			&habit.CreatedAt,
			&habit.UpdatedAt,
		)
		if err != nil {
			return nil, storeErr("scan habit", err)
		}

		if preferredTime.Valid {
			habit.PreferredTime = &preferredTime.String
		}
		if eventID.Valid {
			habit.CalendarEventID = &eventID.String
		}

		habits = append(habits, habit)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate habits", err)
	}

	return habits, nil
}

// HabitPatch carries the fields an update may change
type HabitPatch struct {
	Title           *string
	Description     *string
	GoalType        *models.HabitGoalType
	GoalTarget      *float64
	Progress        *float64
	Frequency       *models.HabitFrequency
	PreferredTime   *string
	CalendarEventID *string
	UpdatedAt       *time.Time
}

// Update applies the patch to the user's habit
func (r *HabitRepository) Update(ctx context.Context, userID, habitID uuid.UUID, patch HabitPatch) error {
	sets := []string{}
	args := []any{habitID, userID}
	argIndex := 3

	addSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if patch.Title != nil {
		addSet("title", *patch.Title)
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.GoalType != nil {
		addSet("goal_type", *patch.GoalType)
	}
	if patch.GoalTarget != nil {
		if *patch.GoalTarget <= 0 {
			return &ValidationError{Field: "goal_target", Reason: "must be greater than zero"}
		}
		addSet("goal_target", *patch.GoalTarget)
	}
	if patch.Progress != nil {
		if *patch.Progress < 0 {
			return &ValidationError{Field: "progress", Reason: "must not be negative"}
		}
		addSet("progress", *patch.Progress)
	}
	if patch.Frequency != nil {
		if !models.ValidHabitFrequency(*patch.Frequency) {
			return &ValidationError{Field: "frequency", Reason: fmt.Sprintf("%q is not daily, weekly or monthly", *patch.Frequency)}
		}
		addSet("frequency", *patch.Frequency)
	}
	if patch.PreferredTime != nil {
		addSet("preferred_time", *patch.PreferredTime)
	}
	if patch.CalendarEventID != nil {
		addSet("calendar_event_id", *patch.CalendarEventID)
	}
	if patch.UpdatedAt != nil {
		addSet("updated_at", *patch.UpdatedAt)
	} else {
		addSet("updated_at", time.Now().UTC())
	}

	query := "UPDATE habits SET "
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += " WHERE id = $1 AND user_id = $2"

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return storeErr("update habit", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storeErr("update habit", err)
	}
	if rowsAffected == 0 {
		return storeErr("update habit", sql.ErrNoRows)
	}

	return nil
}

// Delete removes the user's habit. Deleting a nonexistent id is not an error.
// Cascading the habit's sessions is the session repository's DeleteByHabitID.
func (r *HabitRepository) Delete(ctx context.Context, userID, habitID uuid.UUID) error {
	query := `DELETE FROM habits WHERE id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, habitID, userID); err != nil {
		return storeErr("delete habit", err)
	}

	return nil
}
