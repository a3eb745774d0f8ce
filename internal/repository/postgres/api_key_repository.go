package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

type apiKeyRepository struct {
	executor DBExecutor
}

func NewAPIKeyRepository(db *sql.DB) *apiKeyRepository {
	return &apiKeyRepository{executor: db}
}

// Create stores a key. KeyHash must already hold the hashed value.
func (r *apiKeyRepository) Create(ctx context.Context, key *domain.APIKey) error {
	if key.ID == "" {
		key.ID = uuid.NewString()
	}
	if key.KeyHash == "" {
		return errors.New("key_hash required")
	}

	err := r.executor.QueryRowContext(
		ctx,
		"INSERT INTO api_keys (id, name, key_hash, created_at) VALUES ($1, $2, $3, $4) RETURNING created_at",
		key.ID,
		key.Name,
		key.KeyHash,
		now(),
	).Scan(&key.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert api key: %w", err)
	}
	return nil
}

func (r *apiKeyRepository) GetByHash(ctx context.Context, hash string) (*domain.APIKey, error) {
	query := `
		SELECT id, name, key_hash, created_at, last_used_at, revoked_at
		FROM api_keys
		WHERE key_hash = $1
	`

	key := &domain.APIKey{}
	var lastUsedAt, revokedAt sql.NullTime
	err := r.executor.QueryRowContext(ctx, query, hash).Scan(
		&key.ID,
		&key.Name,
		&key.KeyHash,
		&key.CreatedAt,
		&lastUsedAt,
		&revokedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("api key")
		}
		return nil, err
	}
	key.LastUsedAt = nullTimePtr(lastUsedAt)
	key.RevokedAt = nullTimePtr(revokedAt)

	return key, nil
}

func (r *apiKeyRepository) Touch(ctx context.Context, id string) error {
	_, err := r.executor.ExecContext(ctx, "UPDATE api_keys SET last_used_at = $2 WHERE id = $1", id, now())
	return err
}

func (r *apiKeyRepository) Revoke(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.NewNotFoundError("active api key with id " + id)
	}
	result, err := r.executor.ExecContext(ctx,
		"UPDATE api_keys SET revoked_at = $2 WHERE id = $1 AND revoked_at IS NULL", id, now())
	if err != nil {
		return fmt.Errorf("revoke api key: %w", err)
	}
	return expectOneRow(result, domain.NewNotFoundError("active api key with id "+id))
}
