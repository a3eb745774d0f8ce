package handler

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/bagdasarian/sport-scribe/internal/content"
	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/service"
)

const (
	headerWebhookSignature = "X-Webhook-Signature"
	headerWebhookDelivery  = "X-Webhook-Delivery"
	headerWebhookSource    = "X-Webhook-Source"
)

// ArticleGenerated receives finished articles from the AI backend. The raw
// body is kept intact so the signature can be checked against it.
func (h *Handler) ArticleGenerated(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.handleError(w, r, domain.NewBadRequestError("unable to read request body"))
		return
	}

	delivery := service.WebhookDelivery{
		ID:        r.Header.Get(headerWebhookDelivery),
		Source:    r.Header.Get(headerWebhookSource),
		Signature: r.Header.Get(headerWebhookSignature),
		Body:      body,
	}
	// unlabelled deliveries are attributed to the key that sent them
	if key, ok := APIKeyFromContext(r.Context()); ok && delivery.Source == "" {
		delivery.Source = key.Name
	}

	result, err := h.webhookService.IngestArticle(r.Context(), delivery)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	status := http.StatusCreated
	if result.Duplicate {
		status = http.StatusOK
		h.logger.Info("duplicate webhook delivery",
			zap.String("delivery_id", content.SanitizeLogInput(delivery.ID)),
			zap.String("article_id", result.Article.ID),
		)
	}

	writeJSON(w, status, WebhookResponse{
		Success:   true,
		Duplicate: result.Duplicate,
		Article:   domainArticleToHTTP(result.Article),
	})
}
