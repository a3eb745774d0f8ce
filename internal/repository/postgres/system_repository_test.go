package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/repository"
)

func TestSystemConfigRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("upsert", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewSystemConfigRepository(db)
		updated := time.Now().UTC()

		mock.ExpectQuery("ON CONFLICT \\(key\\) DO UPDATE").
			WithArgs("articles_per_page", "20", "", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updated))

		cfg := &domain.SystemConfig{Key: "articles_per_page", Value: []byte("20")}
		require.NoError(t, repo.Upsert(ctx, cfg))
		assert.Equal(t, updated, cfg.UpdatedAt)
	})

	t.Run("list ordered by key", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewSystemConfigRepository(db)

		mock.ExpectQuery("FROM system_config ORDER BY key").
			WillReturnRows(sqlmock.NewRows([]string{"key", "value", "description", "updated_at"}).
				AddRow("a", []byte(`true`), "", time.Now()).
				AddRow("b", []byte(`{"x":1}`), "nested", time.Now()))

		configs, err := repo.List(ctx)

		require.NoError(t, err)
		require.Len(t, configs, 2)
		assert.JSONEq(t, `{"x":1}`, string(configs[1].Value))
	})
}

func TestWebhookDeliveryRepository_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("new delivery", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewWebhookDeliveryRepository(db)

		mock.ExpectExec("INSERT INTO webhook_deliveries").
			WithArgs("d-1", "ai-backend", testArticleID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		isNew, err := repo.Record(ctx, &domain.WebhookDelivery{ID: "d-1", Source: "ai-backend", ArticleID: testArticleID})

		require.NoError(t, err)
		assert.True(t, isNew)
	})

	t.Run("replayed delivery", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewWebhookDeliveryRepository(db)

		mock.ExpectExec("ON CONFLICT \\(id\\) DO NOTHING").
			WillReturnResult(sqlmock.NewResult(0, 0))

		isNew, err := repo.Record(ctx, &domain.WebhookDelivery{ID: "d-1", ArticleID: testArticleID})

		require.NoError(t, err)
		assert.False(t, isNew)
	})
}

func TestAgentTaskRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("update status keeps article id when nil", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewAgentTaskRepository(db)

		mock.ExpectExec("UPDATE agent_tasks").
			WithArgs(testGameID, "failed", nil, "writer timeout", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateStatus(ctx, testGameID, domain.TaskStatusFailed, nil, "writer timeout"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get by id", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewAgentTaskRepository(db)

		mock.ExpectQuery("FROM agent_tasks").
			WithArgs(testGameID).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "game_id", "article_type", "target_length", "priority", "status", "article_id", "error", "created_at", "updated_at",
			}).AddRow(testGameID, testGameID, "game_recap", 800, "high", "completed", testArticleID, "", time.Now(), time.Now()))

		task, err := repo.GetByID(ctx, testGameID)

		require.NoError(t, err)
		assert.Equal(t, domain.ArticleTypeGameRecap, task.ArticleType)
		assert.Equal(t, domain.PriorityHigh, task.Priority)
		require.NotNil(t, task.ArticleID)
		assert.Equal(t, testArticleID, *task.ArticleID)
	})
}

func TestAnalyticsRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("counts by status", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewAnalyticsRepository(db)

		mock.ExpectQuery("FROM articles GROUP BY status").
			WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).AddRow("draft", 3).AddRow("published", 7))

		stats, err := repo.CountArticlesByStatus(ctx)

		require.NoError(t, err)
		assert.Equal(t, []domain.ArticleStat{{Key: "draft", Count: 3}, {Key: "published", Count: 7}}, stats)
	})

	t.Run("top articles", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewAnalyticsRepository(db)

		mock.ExpectQuery("ORDER BY view_count DESC").
			WithArgs("published", 5).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "slug", "view_count"}).AddRow(testArticleID, "T", "t", 99))

		top, err := repo.TopArticles(ctx, 5)

		require.NoError(t, err)
		require.Len(t, top, 1)
		assert.Equal(t, 99, top[0].ViewCount)
	})

	t.Run("total views", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewAnalyticsRepository(db)

		mock.ExpectQuery("SUM\\(view_count\\)").WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(1234))

		total, err := repo.TotalViews(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1234, total)
	})
}

func TestTransactor_WithinTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		tr := NewTransactor(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO webhook_deliveries").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := tr.WithinTx(ctx, func(repos repository.TxRepositories) error {
			_, err := repos.Deliveries.Record(ctx, &domain.WebhookDelivery{ID: "d-1", ArticleID: testArticleID})
			return err
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		tr := NewTransactor(db)
		boom := errors.New("boom")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := tr.WithinTx(ctx, func(repository.TxRepositories) error { return boom })

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
