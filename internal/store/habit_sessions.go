package store

import (
	"context"
	"time"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/google/uuid"
)

// HabitSessionRepository handles habit session persistence. Sessions are
// create-only from the client's perspective; the only delete is the cascade
// when their habit goes away.
type HabitSessionRepository struct {
	db *DB
}

// NewHabitSessionRepository creates a new habit session repository
func NewHabitSessionRepository(db *DB) *HabitSessionRepository {
	return &HabitSessionRepository{db: db}
}

// Create validates required fields and inserts the session
func (r *HabitSessionRepository) Create(ctx context.Context, session *models.HabitSession) error {
	if session.HabitID == uuid.Nil {
		return &ValidationError{Field: "habit_id", Reason: "is required"}
	}
	if session.Quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.OccurredAt.IsZero() {
		session.OccurredAt = time.Now().UTC()
	}

	query := `
		INSERT INTO habit_sessions (id, user_id, habit_id, quantity, completed, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		session.ID,
		session.UserID,
		session.HabitID,
		session.Quantity,
		session.Completed,
		session.OccurredAt,
		time.Now().UTC(),
	).Scan(&session.CreatedAt)

	if err != nil {
		return storeErr("create habit session", err)
	}

	return nil
}

// GetByUserID retrieves all sessions for a user ordered by creation time
func (r *HabitSessionRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.HabitSession, error) {
	query := `
		SELECT id, user_id, habit_id, quantity, completed, occurred_at, created_at
		FROM habit_sessions
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, storeErr("list habit sessions", err)
	}
	defer rows.Close()

	var sessions []*models.HabitSession
	for rows.Next() {
		session := &models.HabitSession{}
		err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.HabitID,
			&session.Quantity,
			&session.Completed,
			&session.OccurredAt,
			&session.CreatedAt,
		)
		if err != nil {
			return nil, storeErr("scan habit session", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate habit sessions", err)
	}

	return sessions, nil
}

// DeleteByHabitID removes every session belonging to the habit
func (r *HabitSessionRepository) DeleteByHabitID(ctx context.Context, userID, habitID uuid.UUID) error {
	query := `DELETE FROM habit_sessions WHERE habit_id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, habitID, userID); err != nil {
		return storeErr("delete habit sessions", err)
	}

	return nil
}
