package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/repository"
)

const (
	topArticlesLimit = 5
	recentWindow     = 7 * 24 * time.Hour
)

type AnalyticsService interface {
	Summary(ctx context.Context) (*domain.AnalyticsSummary, error)
}

type analyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	taskRepo      repository.AgentTaskRepository
}

func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository, taskRepo repository.AgentTaskRepository) AnalyticsService {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		taskRepo:      taskRepo,
	}
}

// Summary runs the aggregate queries concurrently; the first failure cancels
// the rest.
func (s *analyticsService) Summary(ctx context.Context) (*domain.AnalyticsSummary, error) {
	summary := &domain.AnalyticsSummary{}
	since := time.Now().UTC().Add(-recentWindow)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.analyticsRepo.CountArticlesByStatus(ctx)
		summary.ArticlesByStatus = stats
		return err
	})
	g.Go(func() error {
		stats, err := s.analyticsRepo.CountArticlesBySport(ctx)
		summary.ArticlesBySport = stats
		return err
	})
	g.Go(func() error {
		total, err := s.analyticsRepo.TotalViews(ctx)
		summary.TotalViews = total
		return err
	})
	g.Go(func() error {
		count, err := s.analyticsRepo.PublishedSince(ctx, since)
		summary.PublishedLastWeek = count
		return err
	})
	g.Go(func() error {
		top, err := s.analyticsRepo.TopArticles(ctx, topArticlesLimit)
		summary.TopArticles = top
		return err
	})
	g.Go(func() error {
		stats, err := s.taskRepo.CountByStatus(ctx)
		summary.AgentTasksByStatus = stats
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, stat := range summary.ArticlesByStatus {
		summary.TotalArticles += stat.Count
	}
	return summary, nil
}
