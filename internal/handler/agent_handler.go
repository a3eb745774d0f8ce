package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/service"
)

// GenerateArticle queues a generation request; the article arrives later
// through the webhook.
func (h *Handler) GenerateArticle(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	task, err := h.generationService.RequestArticle(r.Context(), service.GenerationRequest{
		GameID:       req.GameID,
		ArticleType:  domain.ArticleType(req.ArticleType),
		TargetLength: req.TargetLength,
		Priority:     domain.Priority(req.Priority),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, domainTaskToHTTP(task))
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.generationService.GetTask(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainTaskToHTTP(task))
}
