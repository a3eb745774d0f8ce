package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bagdasarian/sport-scribe/internal/db"
	"github.com/bagdasarian/sport-scribe/internal/handler"
	"github.com/bagdasarian/sport-scribe/internal/handler/server"
	"github.com/bagdasarian/sport-scribe/internal/messaging/kafka"
	"github.com/bagdasarian/sport-scribe/internal/repository/postgres"
	"github.com/bagdasarian/sport-scribe/internal/service"
)

type generationQueue interface {
	service.GenerationQueue
	Close() error
}

// newServices builds every service over the postgres repositories.
func newServices(database *sql.DB, queue service.GenerationQueue) (handler.Services, error) {
	articleRepo := postgres.NewArticleRepository(database)
	gameRepo := postgres.NewGameRepository(database)
	teamRepo := postgres.NewTeamRepository(database)
	playerRepo := postgres.NewPlayerRepository(database)
	taskRepo := postgres.NewAgentTaskRepository(database)

	if cfg.IsProduction() && cfg.Webhook.Secret == "" {
		logger.Warn("WEBHOOK_SECRET is empty, webhook signatures are not verified")
	}

	webhooks, err := service.NewWebhookService(
		postgres.NewTransactor(database),
		articleRepo,
		postgres.NewWebhookDeliveryRepository(database),
		cfg.Webhook.Secret,
		logger,
	)
	if err != nil {
		return handler.Services{}, err
	}

	return handler.Services{
		Articles:   service.NewArticleService(articleRepo, logger),
		Search:     service.NewSearchService(articleRepo),
		Webhooks:   webhooks,
		Games:      service.NewGameService(gameRepo, teamRepo),
		Teams:      service.NewTeamService(teamRepo, playerRepo),
		Players:    service.NewPlayerService(playerRepo, teamRepo),
		Auth:       newAuthService(database),
		Generation: service.NewGenerationService(taskRepo, gameRepo, queue, logger),
		Analytics:  service.NewAnalyticsService(postgres.NewAnalyticsRepository(database), taskRepo),
		Config:     service.NewConfigService(postgres.NewSystemConfigRepository(database)),
	}, nil
}

func newAuthService(database *sql.DB) service.AuthService {
	return service.NewAuthService(
		postgres.NewUserProfileRepository(database),
		postgres.NewAPIKeyRepository(database),
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTL,
	)
}

func newGenerationQueue() generationQueue {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Warn("no kafka brokers configured, generation requests are stored but not published")
		return kafka.NewNopPublisher(logger)
	}
	return kafka.NewGenerationPublisher(cfg.Kafka.Brokers, cfg.Kafka.GenerationTopic, logger)
}

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the scheduled publisher and the status consumer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			database, err := db.NewPostgres(cfg)
			if err != nil {
				return err
			}
			defer database.Close()
			logger.Info("connected to database", zap.String("host", cfg.Database.Host))

			if migrate {
				applied, err := db.Migrate(ctx, database)
				if err != nil {
					return err
				}
				logger.Info("migrations applied", zap.Strings("versions", applied))
			}

			queue := newGenerationQueue()
			defer queue.Close()

			services, err := newServices(database, queue)
			if err != nil {
				return err
			}

			publisher := service.NewPublisher(
				postgres.NewArticleRepository(database),
				cfg.Scheduler.Interval,
				cfg.Scheduler.BatchSize,
				logger,
			)
			publisher.Start(ctx)
			defer publisher.Stop()

			h := handler.NewHandler(services, database.PingContext, logger)
			srv := server.NewServer(cfg.Server, h, logger)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(srv.Start)
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			if len(cfg.Kafka.Brokers) > 0 {
				consumer := kafka.NewStatusConsumer(
					cfg.Kafka.Brokers,
					cfg.Kafka.StatusTopic,
					cfg.Kafka.GroupID,
					services.Generation,
					logger,
				)
				defer consumer.Close()
				g.Go(func() error { return consumer.Run(gctx) })
			}

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}
