package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

type userProfileRepository struct {
	executor DBExecutor
}

func NewUserProfileRepository(db *sql.DB) *userProfileRepository {
	return &userProfileRepository{executor: db}
}

func (r *userProfileRepository) Create(ctx context.Context, user *domain.UserProfile) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Email = normalizeEmail(user.Email)

	query := `
		INSERT INTO user_profiles (id, email, display_name, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.executor.QueryRowContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.DisplayName,
		string(user.Role),
		user.PasswordHash,
		now(),
	).Scan(&user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailExists
		}
		return fmt.Errorf("insert user profile: %w", err)
	}

	return nil
}

func (r *userProfileRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NewNotFoundError("user with id " + id)
	}

	query := `
		SELECT id, email, display_name, role, password_hash, created_at, updated_at
		FROM user_profiles
		WHERE id = $1
	`

	user, err := scanUserProfile(r.executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("user with id " + id)
		}
		return nil, err
	}
	return user, nil
}

func (r *userProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	query := `
		SELECT id, email, display_name, role, password_hash, created_at, updated_at
		FROM user_profiles
		WHERE email = $1
	`

	user, err := scanUserProfile(r.executor.QueryRowContext(ctx, query, normalizeEmail(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("user with email " + email)
		}
		return nil, err
	}
	return user, nil
}

func scanUserProfile(row rowScanner) (*domain.UserProfile, error) {
	user := &domain.UserProfile{}
	var (
		role      string
		updatedAt sql.NullTime
	)
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&role,
		&user.PasswordHash,
		&user.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = domain.Role(role)
	user.UpdatedAt = nullTimePtr(updatedAt)
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
