package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/bagdasarian/sport-scribe/internal/content"
	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/repository"
)

const (
	minSearchQueryLength = 2
	maxSearchLimit       = 50
)

type SearchService interface {
	Search(ctx context.Context, query string, limit int) ([]content.ProcessedArticle, error)
}

type searchService struct {
	articleRepo repository.ArticleRepository
}

func NewSearchService(articleRepo repository.ArticleRepository) SearchService {
	return &searchService{articleRepo: articleRepo}
}

func (s *searchService) Search(ctx context.Context, query string, limit int) ([]content.ProcessedArticle, error) {
	query = strings.Join(strings.Fields(query), " ")
	if utf8.RuneCountInString(query) < minSearchQueryLength {
		return nil, domain.NewBadRequestError("search query must be at least %d characters", minSearchQueryLength)
	}
	if limit <= 0 || limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	articles, err := s.articleRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return processArticles(articles), nil
}
