package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/google/uuid"
)

// TaskRepository handles task persistence
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create validates required fields and inserts the task. The document id is
// assigned here when the caller has not pre-assigned one (the calendar import
// path does), and server timestamps are attached to the returned entity.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.Title == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if task.Status == "" {
		return &ValidationError{Field: "status", Reason: "is required"}
	}
	if !models.ValidTaskStatus(task.Status) {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("%q is not a board column", task.Status)}
	}

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	query := `
		INSERT INTO tasks (id, user_id, title, description, status, starts_at, ends_at, calendar_event_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.StartsAt,
		task.EndsAt,
		task.CalendarEventID,
		now,
		now,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return storeErr("create task", err)
	}

	return nil
}

// GetByUserID retrieves all tasks for a user ordered by creation time
func (r *TaskRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	query := `
		SELECT id, user_id, title, description, status, starts_at, ends_at, calendar_event_id, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, storeErr("list tasks", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{}
		var startsAt, endsAt sql.NullTime
		var eventID sql.NullString

		err := rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Title,
			&task.Description,
			&task.Status,
			&startsAt,
			&endsAt,
			&eventID,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, storeErr("scan task", err)
		}

		if startsAt.Valid {
			task.StartsAt = &startsAt.Time
		}
		if endsAt.Valid {
			task.EndsAt = &endsAt.Time
		}
		if eventID.Valid {
			task.CalendarEventID = &eventID.String
		}

		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate tasks", err)
	}

	return tasks, nil
}

// TaskPatch carries the fields an update may change. The document id and
// owner are never patchable. A nil UpdatedAt means the repository refreshes
// the timestamp itself.
type TaskPatch struct {
	Title           *string
	Description     *string
	Status          *models.TaskStatus
	StartsAt        *time.Time
	EndsAt          *time.Time
	CalendarEventID *string
	UpdatedAt       *time.Time
}

// Update applies the patch to the user's task
func (r *TaskRepository) Update(ctx context.Context, userID, taskID uuid.UUID, patch TaskPatch) error {
	sets := []string{}
	args := []any{taskID, userID}
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
	if patch.Status != nil {
		if !models.ValidTaskStatus(*patch.Status) {
			return &ValidationError{Field: "status", Reason: fmt.Sprintf("%q is not a board column", *patch.Status)}
		}
		addSet("status", *patch.Status)
	}
	if patch.StartsAt != nil {
		addSet("starts_at", *patch.StartsAt)
	}
	if patch.EndsAt != nil {
		addSet("ends_at", *patch.EndsAt)
	}
	if patch.CalendarEventID != nil {
		addSet("calendar_event_id", *patch.CalendarEventID)
	}
	if patch.UpdatedAt != nil {
		addSet("updated_at", *patch.UpdatedAt)
	} else {
		addSet("updated_at", time.Now().UTC())
	}

	query := "UPDATE tasks SET "
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += " WHERE id = $1 AND user_id = $2"

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return storeErr("update task", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storeErr("update task", err)
	}
	if rowsAffected == 0 {
		return storeErr("update task", sql.ErrNoRows)
	}

	return nil
}

// Delete removes the user's task. Deleting a nonexistent id is not an error.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, taskID, userID); err != nil {
		return storeErr("delete task", err)
	}

	return nil
}
