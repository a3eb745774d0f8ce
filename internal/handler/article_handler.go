package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/service"
)

func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	filter := domain.ArticleFilter{
		Status: domain.ArticleStatus(q.Get("status")),
		Sport:  q.Get("sport"),
		League: q.Get("league"),
		GameID: q.Get("game_id"),
		Limit:  limit,
		Offset: offset,
	}
	articles, err := h.articleService.ListArticles(r.Context(), filter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ArticleListResponse{
		Articles: processedArticlesToHTTP(articles, time.Now()),
		Count:    len(articles),
		Limit:    service.ClampListLimit(limit),
		Offset:   offset,
	})
}

func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.articleService.GetArticle(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainArticleToHTTP(article))
}

func (h *Handler) GetArticleBySlug(w http.ResponseWriter, r *http.Request) {
	article, err := h.articleService.GetArticleBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, processedArticleToHTTP(*article, time.Now(), true))
}

func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req ArticleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	article := httpArticleToDomain(req)
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		author := claims.Subject
		article.AuthorID = &author
	}

	created, err := h.articleService.CreateArticle(r.Context(), article)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, domainArticleToHTTP(created))
}

func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	var req ArticleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	updated, err := h.articleService.UpdateArticle(r.Context(), mux.Vars(r)["id"], httpArticleToPatch(req))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainArticleToHTTP(updated))
}

func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := h.articleService.DeleteArticle(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) PublishArticle(w http.ResponseWriter, r *http.Request) {
	published, err := h.articleService.PublishArticle(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domainArticleToHTTP(published))
}

func (h *Handler) SearchArticles(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	articles, err := h.searchService.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ArticleListResponse{
		Articles: processedArticlesToHTTP(articles, time.Now()),
		Count:    len(articles),
	})
}
