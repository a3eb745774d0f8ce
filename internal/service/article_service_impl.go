package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bagdasarian/sport-scribe/internal/content"
	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/repository"
)

const (
	defaultListLimit   = 20
	maxListLimit       = 100
	maxSlugAttempts    = 5
	slugFallbackLength = 8
	// leaves room for the -N or id suffix inside the 255-char slug column
	maxSlugBaseLength  = 240
)

var oneDecimal = decimal.NewFromInt(1)

type articleService struct {
	articleRepo repository.ArticleRepository
	logger      *zap.Logger
}

func NewArticleService(articleRepo repository.ArticleRepository, logger *zap.Logger) ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		logger:      logger,
	}
}

func (s *articleService) ListArticles(ctx context.Context, filter domain.ArticleFilter) ([]content.ProcessedArticle, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, domain.NewBadRequestError("unknown article status %q", filter.Status)
	}
	filter.Limit = ClampListLimit(filter.Limit)
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	articles, err := s.articleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return processArticles(articles), nil
}

func (s *articleService) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	return s.articleRepo.GetByID(ctx, id)
}

func (s *articleService) GetArticleBySlug(ctx context.Context, slug string) (*content.ProcessedArticle, error) {
	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if article.Status == domain.ArticleStatusPublished {
		if err := s.articleRepo.IncrementViews(ctx, article.ID); err != nil {
			s.logger.Warn("failed to count article view",
				zap.String("article_id", article.ID),
				zap.Error(err),
			)
		} else {
			article.ViewCount++
		}
	}

	processed := content.ProcessArticleContent(*article)
	return &processed, nil
}

// CreateArticle validates the article, derives a unique slug from the title
// when none is given and stores it. Status defaults to draft.
func (s *articleService) CreateArticle(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	article.Title = strings.TrimSpace(article.Title)
	if article.Title == "" {
		return nil, domain.NewBadRequestError("title is required")
	}

	if article.Status == "" {
		article.Status = domain.ArticleStatusDraft
	}
	if err := validateArticleSchedule(article); err != nil {
		return nil, err
	}
	if err := validateConfidence(article); err != nil {
		return nil, err
	}

	if article.ID == "" {
		article.ID = uuid.NewString()
	}

	if article.Slug == "" {
		slug, err := uniqueSlug(ctx, s.articleRepo, article.Title, article.ID)
		if err != nil {
			return nil, err
		}
		article.Slug = slug
	} else {
		article.Slug = capSlug(content.GenerateSlug(article.Slug))
		if article.Slug == "" {
			return nil, domain.NewBadRequestError("slug must contain letters or digits")
		}
	}

	if article.Sport == "" {
		if sport, ok := content.DetectSport(article.Tags); ok {
			article.Sport = sport
		}
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

func (s *articleService) UpdateArticle(ctx context.Context, id string, patch ArticlePatch) (*domain.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, domain.NewBadRequestError("title cannot be empty")
		}
		article.Title = title
	}
	if patch.Slug != nil {
		slug := capSlug(content.GenerateSlug(*patch.Slug))
		if slug == "" {
			return nil, domain.NewBadRequestError("slug must contain letters or digits")
		}
		article.Slug = slug
	}
	if patch.Content != nil {
		article.Content = *patch.Content
	}
	if patch.Summary != nil {
		article.Summary = *patch.Summary
	}
	if patch.Sport != nil {
		article.Sport = *patch.Sport
	}
	if patch.League != nil {
		article.League = *patch.League
	}
	if patch.Tags != nil {
		article.Tags = patch.Tags
	}
	if patch.GameID != nil {
		article.GameID = patch.GameID
	}
	if patch.AIConfidence != nil {
		article.AIConfidence = patch.AIConfidence
	}
	if patch.FeaturedImageURL != nil {
		article.FeaturedImageURL = *patch.FeaturedImageURL
	}
	if patch.ScheduledAt != nil {
		article.ScheduledAt = patch.ScheduledAt
	}
	if patch.Status != nil {
		article.Status = *patch.Status
	}

	if err := validateArticleSchedule(article); err != nil {
		return nil, err
	}
	if err := validateConfidence(article); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

func (s *articleService) DeleteArticle(ctx context.Context, id string) error {
	return s.articleRepo.Delete(ctx, id)
}

// PublishArticle is idempotent: publishing a published article returns it
// unchanged.
func (s *articleService) PublishArticle(ctx context.Context, id string) (*domain.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if article.Status == domain.ArticleStatusPublished {
		return article, nil
	}

	if err := s.articleRepo.Publish(ctx, id, time.Now().UTC()); err != nil {
		return nil, err
	}

	return s.articleRepo.GetByID(ctx, id)
}

// validateArticleSchedule checks the status and fills published_at for
// articles created directly as published.
func validateArticleSchedule(article *domain.Article) error {
	if !article.Status.IsValid() {
		return domain.NewBadRequestError("unknown article status %q", article.Status)
	}

	switch article.Status {
	case domain.ArticleStatusScheduled:
		if article.ScheduledAt == nil {
			return domain.NewBadRequestError("scheduled_at is required for scheduled articles")
		}
	case domain.ArticleStatusPublished:
		if article.PublishedAt == nil {
			now := time.Now().UTC()
			article.PublishedAt = &now
		}
		article.ScheduledAt = nil
	}
	return nil
}

func validateConfidence(article *domain.Article) error {
	c := article.AIConfidence
	if c == nil {
		return nil
	}
	if c.IsNegative() || c.GreaterThan(oneDecimal) {
		return domain.NewBadRequestError("ai_confidence must be between 0 and 1")
	}
	return nil
}

// uniqueSlug derives a slug from title, appending -2, -3... while taken and
// finally a fragment of the article id.
func uniqueSlug(ctx context.Context, articles repository.ArticleRepository, title, articleID string) (string, error) {
	base := capSlug(content.GenerateSlug(title))
	if base == "" {
		base = "article"
	}

	candidate := base
	for attempt := 2; attempt <= maxSlugAttempts+1; attempt++ {
		_, err := articles.GetBySlug(ctx, candidate)
		if errors.Is(err, domain.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}

	suffix := strings.ReplaceAll(articleID, "-", "")
	if len(suffix) > slugFallbackLength {
		suffix = suffix[:slugFallbackLength]
	}
	return base + "-" + suffix, nil
}

// capSlug truncates slug to maxSlugBaseLength runes without leaving a
// trailing dash.
func capSlug(slug string) string {
	runes := []rune(slug)
	if len(runes) <= maxSlugBaseLength {
		return slug
	}
	return strings.TrimRight(string(runes[:maxSlugBaseLength]), "-")
}

func processArticles(articles []*domain.Article) []content.ProcessedArticle {
	processed := make([]content.ProcessedArticle, 0, len(articles))
	for _, a := range articles {
		processed = append(processed, content.ProcessArticleContent(*a))
	}
	return processed
}

// ClampListLimit applies the default page size for non-positive limits and
// caps the rest at maxListLimit.
func ClampListLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
