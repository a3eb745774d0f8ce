package repository

import (
	"context"
	"time"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

type SystemConfigRepository interface {
	Get(ctx context.Context, key string) (*domain.SystemConfig, error)
	Upsert(ctx context.Context, cfg *domain.SystemConfig) error
	List(ctx context.Context) ([]*domain.SystemConfig, error)
}

type WebhookDeliveryRepository interface {
	// Record stores the delivery and reports false when it was already seen.
	Record(ctx context.Context, delivery *domain.WebhookDelivery) (bool, error)
	Get(ctx context.Context, id string) (*domain.WebhookDelivery, error)
}

type AgentTaskRepository interface {
	Create(ctx context.Context, task *domain.AgentTask) error
	GetByID(ctx context.Context, id string) (*domain.AgentTask, error)
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus, articleID *string, errMsg string) error
	CountByStatus(ctx context.Context) ([]domain.ArticleStat, error)
}

type AnalyticsRepository interface {
	CountArticlesByStatus(ctx context.Context) ([]domain.ArticleStat, error)
	CountArticlesBySport(ctx context.Context) ([]domain.ArticleStat, error)
	TotalViews(ctx context.Context) (int, error)
	PublishedSince(ctx context.Context, since time.Time) (int, error)
	TopArticles(ctx context.Context, limit int) ([]domain.TopArticle, error)
}
