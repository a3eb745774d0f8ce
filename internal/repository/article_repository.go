package repository

import (
	"context"
	"time"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)
	List(ctx context.Context, filter domain.ArticleFilter) ([]*domain.Article, error)
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id string) error
	Publish(ctx context.Context, id string, publishedAt time.Time) error
	PublishScheduled(ctx context.Context, id string, publishedAt time.Time) (bool, error)
	IncrementViews(ctx context.Context, id string) error
	ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]*domain.Article, error)
	Search(ctx context.Context, query string, limit int) ([]*domain.Article, error)
}
