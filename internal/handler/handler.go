package handler

import (
	"context"

	"go.uber.org/zap"

	"github.com/bagdasarian/sport-scribe/internal/service"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func(ctx context.Context) error

type Services struct {
	Articles   service.ArticleService
	Search     service.SearchService
	Webhooks   service.WebhookService
	Games      service.GameService
	Teams      service.TeamService
	Players    service.PlayerService
	Auth       service.AuthService
	Generation service.GenerationService
	Analytics  service.AnalyticsService
	Config     service.ConfigService
}

type Handler struct {
	articleService    service.ArticleService
	searchService     service.SearchService
	webhookService    service.WebhookService
	gameService       service.GameService
	teamService       service.TeamService
	playerService     service.PlayerService
	authService       service.AuthService
	generationService service.GenerationService
	analyticsService  service.AnalyticsService
	configService     service.ConfigService
	health            HealthChecker
	logger            *zap.Logger
}

func NewHandler(services Services, health HealthChecker, logger *zap.Logger) *Handler {
	return &Handler{
		articleService:    services.Articles,
		searchService:     services.Search,
		webhookService:    services.Webhooks,
		gameService:       services.Games,
		teamService:       services.Teams,
		playerService:     services.Players,
		authService:       services.Auth,
		generationService: services.Generation,
		analyticsService:  services.Analytics,
		configService:     services.Config,
		health:            health,
		logger:            logger,
	}
}
