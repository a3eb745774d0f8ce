package service

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/repository"
)

const testTaskID = "6f1d2c3b-4a59-4e8d-9c7b-1a2b3c4d5e6f"

type webhookFixture struct {
	svc        WebhookService
	articles   *MockArticleRepository
	deliveries *MockWebhookDeliveryRepository
	txArticles *MockArticleRepository
	txDeliver  *MockWebhookDeliveryRepository
	txTasks    *MockAgentTaskRepository
	tx         *FakeTransactor
}

func newWebhookFixture(t *testing.T, secret string) *webhookFixture {
	t.Helper()
	f := &webhookFixture{
		articles:   new(MockArticleRepository),
		deliveries: new(MockWebhookDeliveryRepository),
		txArticles: new(MockArticleRepository),
		txDeliver:  new(MockWebhookDeliveryRepository),
		txTasks:    new(MockAgentTaskRepository),
	}
	f.tx = &FakeTransactor{Repos: repository.TxRepositories{
		Articles:   f.txArticles,
		Deliveries: f.txDeliver,
		Tasks:      f.txTasks,
	}}

	svc, err := NewWebhookService(f.tx, f.articles, f.deliveries, secret, zap.NewNop())
	require.NoError(t, err)
	f.svc = svc
	return f
}

func (f *webhookFixture) expectFreshDelivery(id string) {
	f.deliveries.On("Get", mock.Anything, id).Return(nil, notFound("delivery")).Once()
}

func TestWebhookService_IngestArticle(t *testing.T) {
	ctx := context.Background()
	body := []byte(`{"title":"Arsenal 2-1 Chelsea","content":"<p>Match report</p>","tags":["Premier League","football"],"ai_confidence":0.92}`)

	t.Run("stores new article as draft", func(t *testing.T) {
		f := newWebhookFixture(t, "")

		f.expectFreshDelivery("d-1")
		f.articles.On("GetBySlug", mock.Anything, "arsenal-2-1-chelsea").Return(nil, notFound("slug")).Once()
		f.txDeliver.On("Record", mock.Anything, mock.MatchedBy(func(d *domain.WebhookDelivery) bool {
			return d.ID == "d-1" && d.Source == defaultSource && d.ArticleID != ""
		})).Return(true, nil).Once()
		f.txArticles.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		result, err := f.svc.IngestArticle(ctx, WebhookDelivery{ID: "d-1", Body: body})

		require.NoError(t, err)
		assert.False(t, result.Duplicate)
		assert.True(t, f.tx.Committed)
		assert.Equal(t, domain.ArticleStatusDraft, result.Article.Status)
		assert.Equal(t, "arsenal-2-1-chelsea", result.Article.Slug)
		assert.Equal(t, "football", result.Article.Sport)
		require.NotNil(t, result.Article.AIConfidence)
		assert.Equal(t, "0.92", result.Article.AIConfidence.String())
		assert.Nil(t, result.Article.PublishedAt)
		f.txArticles.AssertExpectations(t)
		f.txDeliver.AssertExpectations(t)
	})

	t.Run("auto publish and task completion", func(t *testing.T) {
		f := newWebhookFixture(t, "")
		payload := []byte(`{"title":"Preview","content":"x","auto_publish":true,"task_id":"` + testTaskID + `"}`)

		f.deliveries.On("Get", mock.Anything, mock.Anything).Return(nil, notFound("delivery")).Once()
		f.articles.On("GetBySlug", mock.Anything, "preview").Return(nil, notFound("slug")).Once()
		f.txDeliver.On("Record", mock.Anything, mock.Anything).Return(true, nil).Once()
		f.txArticles.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.txTasks.On("UpdateStatus", mock.Anything, testTaskID, domain.TaskStatusCompleted, mock.AnythingOfType("*string"), "").Return(nil).Once()

		result, err := f.svc.IngestArticle(ctx, WebhookDelivery{Body: payload})

		require.NoError(t, err)
		assert.Equal(t, domain.ArticleStatusPublished, result.Article.Status)
		assert.NotNil(t, result.Article.PublishedAt)
		f.txTasks.AssertExpectations(t)
	})

	t.Run("unknown task does not fail ingestion", func(t *testing.T) {
		f := newWebhookFixture(t, "")
		payload := []byte(`{"title":"Preview","content":"x","task_id":"` + testTaskID + `"}`)

		f.deliveries.On("Get", mock.Anything, mock.Anything).Return(nil, notFound("delivery")).Once()
		f.articles.On("GetBySlug", mock.Anything, "preview").Return(nil, notFound("slug")).Once()
		f.txDeliver.On("Record", mock.Anything, mock.Anything).Return(true, nil).Once()
		f.txArticles.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.txTasks.On("UpdateStatus", mock.Anything, testTaskID, domain.TaskStatusCompleted, mock.Anything, "").
			Return(notFound("agent task")).Once()

		_, err := f.svc.IngestArticle(ctx, WebhookDelivery{Body: payload})

		require.NoError(t, err)
		assert.True(t, f.tx.Committed)
	})

	t.Run("replayed delivery returns stored article", func(t *testing.T) {
		f := newWebhookFixture(t, "")
		stored := &domain.Article{ID: "a-1", Slug: "arsenal-2-1-chelsea"}

		f.deliveries.On("Get", mock.Anything, "d-1").
			Return(&domain.WebhookDelivery{ID: "d-1", ArticleID: "a-1"}, nil).Once()
		f.articles.On("GetByID", mock.Anything, "a-1").Return(stored, nil).Once()

		result, err := f.svc.IngestArticle(ctx, WebhookDelivery{ID: "d-1", Body: body})

		require.NoError(t, err)
		assert.True(t, result.Duplicate)
		assert.Same(t, stored, result.Article)
		f.txArticles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("concurrent replay loses the insert race", func(t *testing.T) {
		f := newWebhookFixture(t, "")
		stored := &domain.Article{ID: "a-1"}

		f.expectFreshDelivery("d-1")
		f.articles.On("GetBySlug", mock.Anything, mock.Anything).Return(nil, notFound("slug")).Once()
		f.txDeliver.On("Record", mock.Anything, mock.Anything).Return(false, nil).Once()
		f.deliveries.On("Get", mock.Anything, "d-1").
			Return(&domain.WebhookDelivery{ID: "d-1", ArticleID: "a-1"}, nil).Once()
		f.articles.On("GetByID", mock.Anything, "a-1").Return(stored, nil).Once()

		result, err := f.svc.IngestArticle(ctx, WebhookDelivery{ID: "d-1", Body: body})

		require.NoError(t, err)
		assert.True(t, result.Duplicate)
		assert.False(t, f.tx.Committed)
		f.txArticles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("delivery id defaults to body hash", func(t *testing.T) {
		f := newWebhookFixture(t, "")

		f.deliveries.On("Get", mock.Anything, mock.MatchedBy(func(id string) bool {
			return len(id) == len(bodyDeliveryPrefix)+64 && id[:len(bodyDeliveryPrefix)] == bodyDeliveryPrefix
		})).Return(&domain.WebhookDelivery{ArticleID: "a-1"}, nil).Once()
		f.articles.On("GetByID", mock.Anything, "a-1").Return(&domain.Article{ID: "a-1"}, nil).Once()

		result, err := f.svc.IngestArticle(ctx, WebhookDelivery{Body: body})

		require.NoError(t, err)
		assert.True(t, result.Duplicate)
	})

	t.Run("schema violations", func(t *testing.T) {
		cases := map[string]string{
			"not json":          `{"title":`,
			"missing content":   `{"title":"x"}`,
			"wrong tag type":    `{"title":"x","content":"y","tags":[1,2]}`,
			"confidence range":  `{"title":"x","content":"y","ai_confidence":3}`,
			"blank title":       `{"title":"   ","content":"y"}`,
			"dashes as game id": `{"title":"x","content":"y","game_id":"------------------------------------"}`,
		}
		for name, payload := range cases {
			t.Run(name, func(t *testing.T) {
				f := newWebhookFixture(t, "")

				_, err := f.svc.IngestArticle(ctx, WebhookDelivery{Body: []byte(payload)})

				assert.ErrorIs(t, err, domain.ErrInvalidPayload)
				f.deliveries.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("long title gets a slug that fits the column", func(t *testing.T) {
		f := newWebhookFixture(t, "")
		payload := []byte(`{"title":"` + strings.Repeat("Lakers ", 57) + `","content":"x"}`)

		f.expectFreshDelivery("d-long")
		f.articles.On("GetBySlug", mock.Anything, mock.Anything).Return(nil, notFound("slug")).Once()
		f.txDeliver.On("Record", mock.Anything, mock.Anything).Return(true, nil).Once()
		f.txArticles.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Article) bool {
			return len(a.Slug) <= maxSlugBaseLength && !strings.HasSuffix(a.Slug, "-")
		})).Return(nil).Once()

		result, err := f.svc.IngestArticle(ctx, WebhookDelivery{ID: "d-long", Body: payload})

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(result.Article.Slug, "lakers-lakers-"))
		f.txArticles.AssertExpectations(t)
	})

	t.Run("slug taken concurrently is derived again", func(t *testing.T) {
		f := newWebhookFixture(t, "")

		f.expectFreshDelivery("d-1")
		f.articles.On("GetBySlug", mock.Anything, "arsenal-2-1-chelsea").Return(nil, notFound("slug")).Once()
		f.txDeliver.On("Record", mock.Anything, mock.Anything).Return(true, nil).Twice()
		f.txArticles.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Article) bool {
			return a.Slug == "arsenal-2-1-chelsea"
		})).Return(domain.ErrSlugExists).Once()
		f.articles.On("GetBySlug", mock.Anything, "arsenal-2-1-chelsea").Return(&domain.Article{ID: "other"}, nil).Once()
		f.articles.On("GetBySlug", mock.Anything, "arsenal-2-1-chelsea-2").Return(nil, notFound("slug")).Once()
		f.txArticles.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Article) bool {
			return a.Slug == "arsenal-2-1-chelsea-2"
		})).Return(nil).Once()

		result, err := f.svc.IngestArticle(ctx, WebhookDelivery{ID: "d-1", Body: body})

		require.NoError(t, err)
		assert.Equal(t, "arsenal-2-1-chelsea-2", result.Article.Slug)
		assert.True(t, f.tx.Committed)
		f.articles.AssertExpectations(t)
		f.txArticles.AssertExpectations(t)
	})

	t.Run("second slug collision is returned", func(t *testing.T) {
		f := newWebhookFixture(t, "")

		f.expectFreshDelivery("d-1")
		f.articles.On("GetBySlug", mock.Anything, mock.Anything).Return(nil, notFound("slug"))
		f.txDeliver.On("Record", mock.Anything, mock.Anything).Return(true, nil)
		f.txArticles.On("Create", mock.Anything, mock.Anything).Return(domain.ErrSlugExists).Twice()

		_, err := f.svc.IngestArticle(ctx, WebhookDelivery{ID: "d-1", Body: body})

		assert.ErrorIs(t, err, domain.ErrSlugExists)
		f.txArticles.AssertExpectations(t)
	})

	t.Run("oversized delivery id is rejected", func(t *testing.T) {
		f := newWebhookFixture(t, "")

		_, err := f.svc.IngestArticle(ctx, WebhookDelivery{ID: strings.Repeat("d", 129), Body: body})

		assert.ErrorIs(t, err, domain.ErrBadRequest)
		f.deliveries.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("long source is truncated to the column width", func(t *testing.T) {
		f := newWebhookFixture(t, "")

		f.expectFreshDelivery("d-1")
		f.articles.On("GetBySlug", mock.Anything, mock.Anything).Return(nil, notFound("slug")).Once()
		f.txDeliver.On("Record", mock.Anything, mock.MatchedBy(func(d *domain.WebhookDelivery) bool {
			return len(d.Source) == maxDeliveryField
		})).Return(true, nil).Once()
		f.txArticles.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.svc.IngestArticle(ctx, WebhookDelivery{ID: "d-1", Source: strings.Repeat("s", 300), Body: body})

		require.NoError(t, err)
		f.txDeliver.AssertExpectations(t)
	})

	t.Run("repository failure rolls back", func(t *testing.T) {
		f := newWebhookFixture(t, "")
		dbErr := errors.New("insert failed")

		f.expectFreshDelivery("d-1")
		f.articles.On("GetBySlug", mock.Anything, mock.Anything).Return(nil, notFound("slug")).Once()
		f.txDeliver.On("Record", mock.Anything, mock.Anything).Return(true, nil).Once()
		f.txArticles.On("Create", mock.Anything, mock.Anything).Return(dbErr).Once()

		_, err := f.svc.IngestArticle(ctx, WebhookDelivery{ID: "d-1", Body: body})

		assert.ErrorIs(t, err, dbErr)
		assert.False(t, f.tx.Committed)
	})
}

func TestWebhookService_Signature(t *testing.T) {
	ctx := context.Background()
	secret := "s3cret"
	body := []byte(`{"title":"Signed","content":"x"}`)
	valid := hex.EncodeToString(SignWebhookBody([]byte(secret), body))

	t.Run("valid signature with prefix", func(t *testing.T) {
		f := newWebhookFixture(t, secret)

		f.deliveries.On("Get", mock.Anything, "d-1").Return(&domain.WebhookDelivery{ArticleID: "a-1"}, nil).Once()
		f.articles.On("GetByID", mock.Anything, "a-1").Return(&domain.Article{ID: "a-1"}, nil).Once()

		_, err := f.svc.IngestArticle(ctx, WebhookDelivery{ID: "d-1", Signature: "sha256=" + valid, Body: body})
		require.NoError(t, err)
	})

	invalid := map[string]string{
		"missing":   "",
		"not hex":   "sha256=zz",
		"wrong mac": hex.EncodeToString(SignWebhookBody([]byte("other"), body)),
	}
	for name, sig := range invalid {
		t.Run(name, func(t *testing.T) {
			f := newWebhookFixture(t, secret)

			_, err := f.svc.IngestArticle(ctx, WebhookDelivery{ID: "d-1", Signature: sig, Body: body})

			assert.ErrorIs(t, err, domain.ErrInvalidSignature)
		})
	}
}
