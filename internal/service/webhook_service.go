package service

import (
	"context"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

type WebhookService interface {
	// IngestArticle stores an article delivered by the AI backend. Replayed
	// deliveries return the originally stored article with Duplicate set.
	IngestArticle(ctx context.Context, delivery WebhookDelivery) (*WebhookResult, error)
}

// WebhookDelivery is a raw webhook request.
type WebhookDelivery struct {
	ID        string
	Source    string
	Signature string
	Body      []byte
}

type WebhookResult struct {
	Article   *domain.Article
	Duplicate bool
}
