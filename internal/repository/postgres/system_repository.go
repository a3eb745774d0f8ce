package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

type systemConfigRepository struct {
	executor DBExecutor
}

func NewSystemConfigRepository(db *sql.DB) *systemConfigRepository {
	return &systemConfigRepository{executor: db}
}

func (r *systemConfigRepository) Get(ctx context.Context, key string) (*domain.SystemConfig, error) {
	cfg := &domain.SystemConfig{}
	err := r.executor.QueryRowContext(ctx,
		"SELECT key, value, description, updated_at FROM system_config WHERE key = $1", key,
	).Scan(&cfg.Key, &cfg.Value, &cfg.Description, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("config key " + key)
		}
		return nil, err
	}
	return cfg, nil
}

func (r *systemConfigRepository) Upsert(ctx context.Context, cfg *domain.SystemConfig) error {
	query := `
		INSERT INTO system_config (key, value, description, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, description = EXCLUDED.description, updated_at = EXCLUDED.updated_at
		RETURNING updated_at
	`

	err := r.executor.QueryRowContext(ctx, query, cfg.Key, string(cfg.Value), cfg.Description, now()).
		Scan(&cfg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert config %s: %w", cfg.Key, err)
	}
	return nil
}

func (r *systemConfigRepository) List(ctx context.Context) ([]*domain.SystemConfig, error) {
	rows, err := r.executor.QueryContext(ctx,
		"SELECT key, value, description, updated_at FROM system_config ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []*domain.SystemConfig
	for rows.Next() {
		cfg := &domain.SystemConfig{}
		if err := rows.Scan(&cfg.Key, &cfg.Value, &cfg.Description, &cfg.UpdatedAt); err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, rows.Err()
}

type webhookDeliveryRepository struct {
	executor DBExecutor
}

func NewWebhookDeliveryRepository(db *sql.DB) *webhookDeliveryRepository {
	return &webhookDeliveryRepository{executor: db}
}

func NewWebhookDeliveryRepositoryWithTx(tx *sql.Tx) *webhookDeliveryRepository {
	return &webhookDeliveryRepository{executor: tx}
}

func (r *webhookDeliveryRepository) Record(ctx context.Context, delivery *domain.WebhookDelivery) (bool, error) {
	if delivery.ReceivedAt.IsZero() {
		delivery.ReceivedAt = now()
	}

	result, err := r.executor.ExecContext(ctx, `
		INSERT INTO webhook_deliveries (id, source, article_id, received_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`, delivery.ID, delivery.Source, delivery.ArticleID, delivery.ReceivedAt)
	if err != nil {
		return false, fmt.Errorf("record webhook delivery: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *webhookDeliveryRepository) Get(ctx context.Context, id string) (*domain.WebhookDelivery, error) {
	d := &domain.WebhookDelivery{}
	err := r.executor.QueryRowContext(ctx,
		"SELECT id, source, article_id, received_at FROM webhook_deliveries WHERE id = $1", id,
	).Scan(&d.ID, &d.Source, &d.ArticleID, &d.ReceivedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("webhook delivery " + id)
		}
		return nil, err
	}
	return d, nil
}

type agentTaskRepository struct {
	executor DBExecutor
}

func NewAgentTaskRepository(db *sql.DB) *agentTaskRepository {
	return &agentTaskRepository{executor: db}
}

func NewAgentTaskRepositoryWithTx(tx *sql.Tx) *agentTaskRepository {
	return &agentTaskRepository{executor: tx}
}

func (r *agentTaskRepository) Create(ctx context.Context, task *domain.AgentTask) error {
	query := `
		INSERT INTO agent_tasks (id, game_id, article_type, target_length, priority, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.executor.QueryRowContext(
		ctx,
		query,
		task.ID,
		task.GameID,
		string(task.ArticleType),
		task.TargetLength,
		string(task.Priority),
		string(task.Status),
		now(),
	).Scan(&task.CreatedAt)
	if err != nil {
		if fkErr := foreignKeyError(err); fkErr != nil {
			return fkErr
		}
		return fmt.Errorf("insert agent task: %w", err)
	}
	return nil
}

func (r *agentTaskRepository) GetByID(ctx context.Context, id string) (*domain.AgentTask, error) {
	if !isUUID(id) {
		return nil, domain.NewNotFoundError("agent task with id " + id)
	}

	query := `
		SELECT id, game_id, article_type, target_length, priority, status, article_id, error, created_at, updated_at
		FROM agent_tasks
		WHERE id = $1
	`

	task := &domain.AgentTask{}
	var (
		articleType, priority, status string
		articleID                     sql.NullString
		updatedAt                     sql.NullTime
	)
	err := r.executor.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.GameID,
		&articleType,
		&task.TargetLength,
		&priority,
		&status,
		&articleID,
		&task.Error,
		&task.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("agent task with id " + id)
		}
		return nil, err
	}

	task.ArticleType = domain.ArticleType(articleType)
	task.Priority = domain.Priority(priority)
	task.Status = domain.TaskStatus(status)
	task.ArticleID = nullStringPtr(articleID)
	task.UpdatedAt = nullTimePtr(updatedAt)

	return task, nil
}

func (r *agentTaskRepository) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus, articleID *string, errMsg string) error {
	if !isUUID(id) {
		return domain.NewNotFoundError("agent task with id " + id)
	}

	query := `
		UPDATE agent_tasks
		SET status = $2, article_id = COALESCE($3, article_id), error = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.executor.ExecContext(ctx, query, id, string(status), nullable(articleID), errMsg, now())
	if err != nil {
		return fmt.Errorf("update agent task: %w", err)
	}
	return expectOneRow(result, domain.NewNotFoundError("agent task with id "+id))
}

func (r *agentTaskRepository) CountByStatus(ctx context.Context) ([]domain.ArticleStat, error) {
	return queryStats(ctx, r.executor, "SELECT status, COUNT(*) FROM agent_tasks GROUP BY status ORDER BY status")
}

type analyticsRepository struct {
	executor DBExecutor
}

func NewAnalyticsRepository(db *sql.DB) *analyticsRepository {
	return &analyticsRepository{executor: db}
}

func (r *analyticsRepository) CountArticlesByStatus(ctx context.Context) ([]domain.ArticleStat, error) {
	return queryStats(ctx, r.executor, "SELECT status, COUNT(*) FROM articles GROUP BY status ORDER BY status")
}

func (r *analyticsRepository) CountArticlesBySport(ctx context.Context) ([]domain.ArticleStat, error) {
	return queryStats(ctx, r.executor, `
		SELECT COALESCE(NULLIF(sport, ''), 'unknown') AS sport, COUNT(*) AS count
		FROM articles
		GROUP BY 1
		ORDER BY count DESC, sport
	`)
}

func (r *analyticsRepository) TotalViews(ctx context.Context) (int, error) {
	var total int
	err := r.executor.QueryRowContext(ctx, "SELECT COALESCE(SUM(view_count), 0) FROM articles").Scan(&total)
	return total, err
}

func (r *analyticsRepository) PublishedSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.executor.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM articles WHERE status = $1 AND published_at >= $2",
		string(domain.ArticleStatusPublished), since,
	).Scan(&count)
	return count, err
}

func (r *analyticsRepository) TopArticles(ctx context.Context, limit int) ([]domain.TopArticle, error) {
	rows, err := r.executor.QueryContext(ctx, `
		SELECT id, title, slug, view_count
		FROM articles
		WHERE status = $1
		ORDER BY view_count DESC, published_at DESC
		LIMIT $2
	`, string(domain.ArticleStatusPublished), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []domain.TopArticle
	for rows.Next() {
		var a domain.TopArticle
		if err := rows.Scan(&a.ID, &a.Title, &a.Slug, &a.ViewCount); err != nil {
			return nil, err
		}
		top = append(top, a)
	}
	return top, rows.Err()
}

func queryStats(ctx context.Context, executor DBExecutor, query string, args ...any) ([]domain.ArticleStat, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []domain.ArticleStat
	for rows.Next() {
		var stat domain.ArticleStat
		if err := rows.Scan(&stat.Key, &stat.Count); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}
