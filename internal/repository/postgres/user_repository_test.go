package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

const testUserID = "c4a1e8b2-7d3f-4e6a-9b1c-5d2e8f0a3b41"

func TestUserProfileRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes email", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserProfileRepository(db)

		mock.ExpectQuery("INSERT INTO user_profiles").
			WithArgs(sqlmock.AnyArg(), "jane@example.com", "Jane", "editor", "hash", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

		user := &domain.UserProfile{Email: "  Jane@Example.COM ", DisplayName: "Jane", Role: domain.RoleEditor, PasswordHash: "hash"}
		require.NoError(t, repo.Create(ctx, user))
		assert.Equal(t, "jane@example.com", user.Email)
		assert.NotEmpty(t, user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserProfileRepository(db)

		mock.ExpectQuery("INSERT INTO user_profiles").WillReturnError(&pgconn.PgError{Code: "23505"})

		err := repo.Create(ctx, &domain.UserProfile{Email: "jane@example.com", Role: domain.RoleReader})
		assert.ErrorIs(t, err, domain.ErrEmailExists)
	})
}

func TestUserProfileRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	columns := []string{"id", "email", "display_name", "role", "password_hash", "created_at", "updated_at"}

	t.Run("found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserProfileRepository(db)

		mock.ExpectQuery("FROM user_profiles").
			WithArgs("jane@example.com").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(testUserID, "jane@example.com", "Jane", "admin", "hash", time.Now(), nil))

		user, err := repo.GetByEmail(ctx, "JANE@example.com")

		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, user.Role)
		assert.Equal(t, testUserID, user.ID)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserProfileRepository(db)

		mock.ExpectQuery("FROM user_profiles").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAPIKeyRepository(t *testing.T) {
	ctx := context.Background()
	hash := "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"

	t.Run("create requires hash", func(t *testing.T) {
		db, _ := setupMockDB(t)
		repo := NewAPIKeyRepository(db)

		assert.Error(t, repo.Create(ctx, &domain.APIKey{Name: "ai-backend"}))
	})

	t.Run("get by hash with revoked key", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewAPIKeyRepository(db)
		revoked := time.Now().UTC()

		mock.ExpectQuery("FROM api_keys").
			WithArgs(hash).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "key_hash", "created_at", "last_used_at", "revoked_at"}).
				AddRow(testUserID, "ai-backend", hash, time.Now(), nil, revoked))

		key, err := repo.GetByHash(ctx, hash)

		require.NoError(t, err)
		assert.Nil(t, key.LastUsedAt)
		require.NotNil(t, key.RevokedAt)
		assert.Equal(t, revoked, *key.RevokedAt)
	})

	t.Run("revoke twice", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewAPIKeyRepository(db)

		mock.ExpectExec("UPDATE api_keys SET revoked_at").
			WithArgs(testUserID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE api_keys SET revoked_at").
			WithArgs(testUserID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, repo.Revoke(ctx, testUserID))
		assert.ErrorIs(t, repo.Revoke(ctx, testUserID), domain.ErrNotFound)
	})
}
