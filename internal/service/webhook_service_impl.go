package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/qri-io/jsonschema"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bagdasarian/sport-scribe/internal/content"
	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/repository"
)

//go:embed schemas/article_webhook.json
var articleWebhookSchema []byte

const (
	signaturePrefix    = "sha256="
	bodyDeliveryPrefix = "sha256:"
	defaultSource      = "ai-backend"
	// a second pass re-derives the slug after a concurrent insert took it
	maxIngestAttempts  = 2
	// width of webhook_deliveries.id and source
	maxDeliveryField   = 128
)

var errDuplicateDelivery = errors.New("duplicate delivery")

type articlePayload struct {
	Title            string           `json:"title"`
	Slug             string           `json:"slug"`
	Content          string           `json:"content"`
	Summary          string           `json:"summary"`
	Sport            string           `json:"sport"`
	League           string           `json:"league"`
	Tags             []string         `json:"tags"`
	GameID           *string          `json:"game_id"`
	AuthorID         *string          `json:"author_id"`
	TaskID           string           `json:"task_id"`
	AIConfidence     *decimal.Decimal `json:"ai_confidence"`
	FeaturedImageURL string           `json:"featured_image_url"`
	AutoPublish      bool             `json:"auto_publish"`
}

type webhookService struct {
	tx           repository.Transactor
	articleRepo  repository.ArticleRepository
	deliveryRepo repository.WebhookDeliveryRepository
	schema       *jsonschema.Schema
	secret       []byte
	logger       *zap.Logger
}

// NewWebhookService builds the ingestion service. An empty secret disables
// signature verification.
func NewWebhookService(
	tx repository.Transactor,
	articleRepo repository.ArticleRepository,
	deliveryRepo repository.WebhookDeliveryRepository,
	secret string,
	logger *zap.Logger,
) (WebhookService, error) {
	schema := &jsonschema.Schema{}
	if err := json.Unmarshal(articleWebhookSchema, schema); err != nil {
		return nil, fmt.Errorf("compile webhook schema: %w", err)
	}

	return &webhookService{
		tx:           tx,
		articleRepo:  articleRepo,
		deliveryRepo: deliveryRepo,
		schema:       schema,
		secret:       []byte(secret),
		logger:       logger,
	}, nil
}

func (s *webhookService) IngestArticle(ctx context.Context, delivery WebhookDelivery) (*WebhookResult, error) {
	if err := s.verifySignature(delivery.Signature, delivery.Body); err != nil {
		return nil, err
	}

	payload, err := s.decodePayload(ctx, delivery.Body)
	if err != nil {
		return nil, err
	}

	deliveryID := strings.TrimSpace(delivery.ID)
	if deliveryID == "" {
		sum := sha256.Sum256(delivery.Body)
		deliveryID = bodyDeliveryPrefix + hex.EncodeToString(sum[:])
	}
	if utf8.RuneCountInString(deliveryID) > maxDeliveryField {
		return nil, domain.NewBadRequestError("delivery id is longer than %d characters", maxDeliveryField)
	}
	source := strings.TrimSpace(delivery.Source)
	if source == "" {
		source = defaultSource
	}
	if runes := []rune(source); len(runes) > maxDeliveryField {
		source = string(runes[:maxDeliveryField])
	}

	// cheap replay check before doing slug lookups
	if existing, err := s.deliveryRepo.Get(ctx, deliveryID); err == nil {
		return s.duplicateResult(ctx, existing)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	article := s.buildArticle(payload)
	if err := s.assignSlug(ctx, article, payload); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		err = s.store(ctx, article, payload, deliveryID, source)
		if !errors.Is(err, domain.ErrSlugExists) || attempt >= maxIngestAttempts {
			break
		}
		s.logger.Info("slug taken by a concurrent insert, retrying",
			zap.String("slug", article.Slug),
			zap.String("delivery_id", content.SanitizeLogInput(deliveryID)),
		)
		if err := s.assignSlug(ctx, article, payload); err != nil {
			return nil, err
		}
	}
	if errors.Is(err, errDuplicateDelivery) {
		existing, err := s.deliveryRepo.Get(ctx, deliveryID)
		if err != nil {
			return nil, err
		}
		return s.duplicateResult(ctx, existing)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("article ingested from webhook",
		zap.String("article_id", article.ID),
		zap.String("slug", article.Slug),
		zap.String("status", string(article.Status)),
		zap.String("delivery_id", content.SanitizeLogInput(deliveryID)),
	)

	return &WebhookResult{Article: article}, nil
}

// store claims the delivery, inserts the article and completes the agent
// task in one transaction.
func (s *webhookService) store(ctx context.Context, article *domain.Article, payload *articlePayload, deliveryID, source string) error {
	return s.tx.WithinTx(ctx, func(repos repository.TxRepositories) error {
		isNew, err := repos.Deliveries.Record(ctx, &domain.WebhookDelivery{
			ID:        deliveryID,
			Source:    source,
			ArticleID: article.ID,
		})
		if err != nil {
			return err
		}
		if !isNew {
			return errDuplicateDelivery
		}

		if err := repos.Articles.Create(ctx, article); err != nil {
			return err
		}

		if payload.TaskID == "" {
			return nil
		}
		err = repos.Tasks.UpdateStatus(ctx, payload.TaskID, domain.TaskStatusCompleted, &article.ID, "")
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("webhook names unknown agent task",
				zap.String("task_id", content.SanitizeLogInput(payload.TaskID)),
				zap.String("delivery_id", content.SanitizeLogInput(deliveryID)),
			)
			return nil
		}
		return err
	})
}

// verifySignature accepts "sha256=<hex>" or bare hex HMAC-SHA256 of the body.
func (s *webhookService) verifySignature(signature string, body []byte) error {
	if len(s.secret) == 0 {
		return nil
	}

	signature = strings.TrimPrefix(strings.TrimSpace(signature), signaturePrefix)
	if signature == "" {
		return domain.ErrInvalidSignature
	}
	got, err := hex.DecodeString(signature)
	if err != nil {
		return domain.ErrInvalidSignature
	}

	if !hmac.Equal(got, SignWebhookBody(s.secret, body)) {
		return domain.ErrInvalidSignature
	}
	return nil
}

func (s *webhookService) decodePayload(ctx context.Context, body []byte) (*articlePayload, error) {
	if !json.Valid(body) {
		return nil, domain.NewInvalidPayloadError("body is not valid JSON")
	}

	keyErrs, err := s.schema.ValidateBytes(ctx, body)
	if err != nil {
		return nil, domain.NewInvalidPayloadError(err.Error())
	}
	if len(keyErrs) > 0 {
		reasons := make([]string, 0, len(keyErrs))
		for _, ke := range keyErrs {
			reasons = append(reasons, fmt.Sprintf("%s: %s", ke.PropertyPath, ke.Message))
		}
		return nil, domain.NewInvalidPayloadError(strings.Join(reasons, "; "))
	}

	var payload articlePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domain.NewInvalidPayloadError(err.Error())
	}
	if strings.TrimSpace(payload.Title) == "" {
		return nil, domain.NewInvalidPayloadError("title is blank")
	}
	return &payload, nil
}

func (s *webhookService) buildArticle(payload *articlePayload) *domain.Article {
	article := &domain.Article{
		ID:               uuid.NewString(),
		Title:            strings.TrimSpace(payload.Title),
		Content:          payload.Content,
		Summary:          payload.Summary,
		AuthorID:         payload.AuthorID,
		Status:           domain.ArticleStatusDraft,
		Sport:            payload.Sport,
		League:           payload.League,
		Tags:             payload.Tags,
		GameID:           payload.GameID,
		AIConfidence:     payload.AIConfidence,
		FeaturedImageURL: payload.FeaturedImageURL,
	}

	if payload.AutoPublish {
		now := time.Now().UTC()
		article.Status = domain.ArticleStatusPublished
		article.PublishedAt = &now
	}

	if article.Sport == "" {
		if sport, ok := content.DetectSport(article.Tags); ok {
			article.Sport = sport
		}
	}

	return article
}

// assignSlug prefers the slug suggested by the sender and falls back to the
// title.
func (s *webhookService) assignSlug(ctx context.Context, article *domain.Article, payload *articlePayload) error {
	slugSource := payload.Slug
	if content.GenerateSlug(slugSource) == "" {
		slugSource = article.Title
	}
	slug, err := uniqueSlug(ctx, s.articleRepo, slugSource, article.ID)
	if err != nil {
		return err
	}
	article.Slug = slug
	return nil
}

func (s *webhookService) duplicateResult(ctx context.Context, delivery *domain.WebhookDelivery) (*WebhookResult, error) {
	article, err := s.articleRepo.GetByID(ctx, delivery.ArticleID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("duplicate webhook delivery ignored",
		zap.String("delivery_id", content.SanitizeLogInput(delivery.ID)),
		zap.String("article_id", article.ID),
	)
	return &WebhookResult{Article: article, Duplicate: true}, nil
}

// SignWebhookBody returns the HMAC-SHA256 of body, as expected in the
// X-Webhook-Signature header (hex encoded).
func SignWebhookBody(secret, body []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return mac.Sum(nil)
}
