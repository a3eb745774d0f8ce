package handler

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/bagdasarian/sport-scribe/internal/content"
	"github.com/bagdasarian/sport-scribe/internal/domain"
)

func TestProcessedArticleToHTTP(t *testing.T) {
	created := time.Date(2024, 1, 12, 8, 0, 0, 0, time.UTC)
	published := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	now := published.Add(72 * time.Hour)

	processed := content.ProcessArticleContent(domain.Article{
		ID:          "a1",
		Title:       "Derby Day",
		Content:     "Arsenal won.",
		Status:      domain.ArticleStatusPublished,
		Sport:       "football",
		League:      "premier_league",
		Tags:        []string{"derby"},
		PublishedAt: &published,
		CreatedAt:   created,
	})

	got := processedArticleToHTTP(processed, now, false)

	assert.Empty(t, got.Content)
	assert.Equal(t, "January 15, 2024", got.FormattedDate)
	assert.Equal(t, "3 days ago", got.RelativeDate)
	want := CategoriesResponse{
		Sports:  []string{"football"},
		Leagues: []string{"premier_league"},
		Other:   []string{"derby"},
	}
	if diff := cmp.Diff(want, got.Categories); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}

	withBody := processedArticleToHTTP(processed, now, true)
	assert.Equal(t, "Arsenal won.", withBody.Content)
}

func TestDomainGameToHTTP_Score(t *testing.T) {
	home, away := 3, 0
	resp := domainGameToHTTP(&domain.Game{ID: "g1", League: "nba", HomeScore: &home, AwayScore: &away})

	assert.Equal(t, "3-0", resp.Score)
	assert.Equal(t, "NBA", resp.LeagueName)

	resp = domainGameToHTTP(&domain.Game{ID: "g2", League: "local_cup"})
	assert.Empty(t, resp.Score)
	assert.Equal(t, "Local Cup", resp.LeagueName)
}

func TestHTTPPlayerToDomain_DefaultsActive(t *testing.T) {
	assert.True(t, httpPlayerToDomain(PlayerRequest{Name: "Bukayo Saka"}).IsActive)

	inactive := false
	assert.False(t, httpPlayerToDomain(PlayerRequest{Name: "Retired", IsActive: &inactive}).IsActive)
}

func TestHTTPArticleToPatch(t *testing.T) {
	status := "published"
	title := "New title"
	patch := httpArticleToPatch(ArticleRequest{Title: &title, Status: &status})

	assert.Equal(t, &title, patch.Title)
	if assert.NotNil(t, patch.Status) {
		assert.Equal(t, domain.ArticleStatusPublished, *patch.Status)
	}
	assert.Nil(t, patch.Summary)
}
