package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

func TestConfigService_SetConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("stores valid json", func(t *testing.T) {
		repo := new(MockSystemConfigRepository)
		svc := NewConfigService(repo)

		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(cfg *domain.SystemConfig) bool {
			return cfg.Key == "homepage.featured_sports" && string(cfg.Value) == `["football","nba"]`
		})).Return(nil).Once()

		cfg, err := svc.SetConfig(ctx, "homepage.featured_sports", json.RawMessage(`["football","nba"]`), "sports on the homepage")

		require.NoError(t, err)
		assert.Equal(t, "sports on the homepage", cfg.Description)
		repo.AssertExpectations(t)
	})

	t.Run("rejects bad key or value", func(t *testing.T) {
		svc := NewConfigService(new(MockSystemConfigRepository))

		_, err := svc.SetConfig(ctx, "Bad Key", json.RawMessage(`1`), "")
		assert.ErrorIs(t, err, domain.ErrBadRequest)

		_, err = svc.SetConfig(ctx, "ok", json.RawMessage(`{nope`), "")
		assert.ErrorIs(t, err, domain.ErrBadRequest)

		_, err = svc.SetConfig(ctx, "ok", nil, "")
		assert.ErrorIs(t, err, domain.ErrBadRequest)
	})
}

func TestSearchService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes query", func(t *testing.T) {
		repo := new(MockArticleRepository)
		svc := NewSearchService(repo)

		repo.On("Search", mock.Anything, "champions league", maxSearchLimit).
			Return([]*domain.Article{{ID: "a1", Summary: "Final preview"}}, nil).Once()

		results, err := svc.Search(ctx, "  champions   league ", 0)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Final preview", results[0].Excerpt)
	})

	t.Run("too short", func(t *testing.T) {
		svc := NewSearchService(new(MockArticleRepository))

		_, err := svc.Search(ctx, " a ", 10)
		assert.ErrorIs(t, err, domain.ErrBadRequest)
	})
}
