package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/handler"
)

// NewRouter registers every route. Middleware wraps the router rather than
// hanging off it so preflight requests reach CORS before method matching.
func NewRouter(h *handler.Handler, logger *zap.Logger, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	SetupRoutes(r, h)

	var root http.Handler = r
	root = CORSMiddleware(allowedOrigins)(root)
	root = LoggingMiddleware(logger)(root)
	root = RecoveryMiddleware(logger)(root)
	root = RequestIDMiddleware(root)
	return root
}

func SetupRoutes(r *mux.Router, h *handler.Handler) {
	editor := func(fn http.HandlerFunc) http.Handler { return h.RequireRole(domain.RoleEditor, fn) }
	admin := func(fn http.HandlerFunc) http.Handler { return h.RequireRole(domain.RoleAdmin, fn) }

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/signup", h.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/signin", h.Signin).Methods(http.MethodPost)
	api.Handle("/auth/me", h.RequireAuth(http.HandlerFunc(h.Me))).Methods(http.MethodGet)

	api.HandleFunc("/articles", h.ListArticles).Methods(http.MethodGet)
	api.Handle("/articles", editor(h.CreateArticle)).Methods(http.MethodPost)
	api.HandleFunc("/articles/slug/{slug}", h.GetArticleBySlug).Methods(http.MethodGet)
	api.HandleFunc("/articles/{id}", h.GetArticle).Methods(http.MethodGet)
	api.Handle("/articles/{id}", editor(h.UpdateArticle)).Methods(http.MethodPut)
	api.Handle("/articles/{id}", editor(h.DeleteArticle)).Methods(http.MethodDelete)
	api.Handle("/articles/{id}/publish", editor(h.PublishArticle)).Methods(http.MethodPost)
	api.HandleFunc("/search", h.SearchArticles).Methods(http.MethodGet)

	api.Handle("/webhooks/article-generated", h.RequireAPIKey(http.HandlerFunc(h.ArticleGenerated))).Methods(http.MethodPost)

	api.HandleFunc("/games", h.ListGames).Methods(http.MethodGet)
	api.Handle("/games", editor(h.CreateGame)).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}", h.GetGame).Methods(http.MethodGet)
	api.Handle("/games/{id}/score", editor(h.UpdateGameScore)).Methods(http.MethodPatch)

	api.HandleFunc("/leagues", h.ListLeagues).Methods(http.MethodGet)

	api.HandleFunc("/teams", h.ListTeams).Methods(http.MethodGet)
	api.Handle("/teams", editor(h.CreateTeam)).Methods(http.MethodPost)
	api.HandleFunc("/teams/{id}", h.GetTeam).Methods(http.MethodGet)

	api.HandleFunc("/players", h.ListPlayers).Methods(http.MethodGet)
	api.Handle("/players", editor(h.CreatePlayer)).Methods(http.MethodPost)
	api.HandleFunc("/players/{id}", h.GetPlayer).Methods(http.MethodGet)

	api.Handle("/agents/generate", editor(h.GenerateArticle)).Methods(http.MethodPost)
	api.Handle("/agents/tasks/{id}", editor(h.GetTask)).Methods(http.MethodGet)

	api.Handle("/analytics/summary", editor(h.AnalyticsSummary)).Methods(http.MethodGet)

	api.Handle("/config", admin(h.ListConfig)).Methods(http.MethodGet)
	api.Handle("/config/{key}", admin(h.GetConfig)).Methods(http.MethodGet)
	api.Handle("/config/{key}", admin(h.SetConfig)).Methods(http.MethodPut)
}
