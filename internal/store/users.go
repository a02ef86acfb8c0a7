package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/google/uuid"
)

// UserRepository handles user profile persistence
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user profile
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, provider_id, name, avatar_url, email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query,
		user.ID,
		user.Email,
		user.ProviderID,
		user.Name,
		user.AvatarURL,
		user.EmailVerified,
		now,
		now,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return storeErr("create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, email, provider_id, name, avatar_url, email_verified, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByProviderID retrieves a user by the identity provider's subject
func (r *UserRepository) GetByProviderID(ctx context.Context, providerID string) (*models.User, error) {
	query := `
		SELECT id, email, provider_id, name, avatar_url, email_verified, created_at, updated_at
		FROM users
		WHERE provider_id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, providerID))
}

func (r *UserRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var providerID, name, avatarURL sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Email,
		&providerID,
		&name,
		&avatarURL,
		&user.EmailVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, storeErr("get user", err)
	}
	if err != nil {
		return nil, storeErr("get user", err)
	}

	if providerID.Valid {
		user.ProviderID = &providerID.String
	}
	if name.Valid {
		user.Name = &name.String
	}
	if avatarURL.Valid {
		user.AvatarURL = &avatarURL.String
	}

	return user, nil
}

// UserPatch carries the profile fields an update may change
type UserPatch struct {
	Email     *string
	Name      *string
	AvatarURL *string
}

// Update applies the patch to the user profile
func (r *UserRepository) Update(ctx context.Context, userID uuid.UUID, patch UserPatch) error {
	sets := []string{}
	args := []any{userID}
	argIndex := 2

	addSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if patch.Email != nil {
		addSet("email", *patch.Email)
	}
	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.AvatarURL != nil {
		addSet("avatar_url", *patch.AvatarURL)
	}
	addSet("updated_at", time.Now().UTC())

	query := "UPDATE users SET "
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += " WHERE id = $1"

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return storeErr("update user", err)
	}

	return nil
}
