package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bagdasarian/sport-scribe/internal/content"
	"github.com/bagdasarian/sport-scribe/internal/domain"
)

type ArticleService interface {
	ListArticles(ctx context.Context, filter domain.ArticleFilter) ([]content.ProcessedArticle, error)
	GetArticle(ctx context.Context, id string) (*domain.Article, error)
	// GetArticleBySlug counts a view when the article is published.
	GetArticleBySlug(ctx context.Context, slug string) (*content.ProcessedArticle, error)
	CreateArticle(ctx context.Context, article *domain.Article) (*domain.Article, error)
	UpdateArticle(ctx context.Context, id string, patch ArticlePatch) (*domain.Article, error)
	DeleteArticle(ctx context.Context, id string) error
	PublishArticle(ctx context.Context, id string) (*domain.Article, error)
}

// ArticlePatch carries the fields of a partial update. Nil means unchanged.
type ArticlePatch struct {
	Title            *string
	Slug             *string
	Content          *string
	Summary          *string
	Status           *domain.ArticleStatus
	Sport            *string
	League           *string
	Tags             []string
	GameID           *string
	AIConfidence     *decimal.Decimal
	FeaturedImageURL *string
	ScheduledAt      *time.Time
}
