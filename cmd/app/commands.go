package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bagdasarian/sport-scribe/internal/db"
	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/repository/postgres"
	"github.com/bagdasarian/sport-scribe/internal/seed"
	"github.com/bagdasarian/sport-scribe/internal/service"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.NewPostgres(cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			applied, err := db.Migrate(cmd.Context(), database)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
				return nil
			}
			for _, v := range applied {
				fmt.Fprintln(cmd.OutOrStdout(), "applied", v)
			}
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample teams, players, games and articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			database, err := db.NewPostgres(cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			if clear {
				if err := seed.Clear(ctx, database); err != nil {
					return err
				}
				logger.Info("existing seed data cleared")
			}

			articleRepo := postgres.NewArticleRepository(database)
			teamRepo := postgres.NewTeamRepository(database)
			playerRepo := postgres.NewPlayerRepository(database)
			seeder := seed.NewSeeder(
				service.NewTeamService(teamRepo, playerRepo),
				service.NewPlayerService(playerRepo, teamRepo),
				service.NewGameService(postgres.NewGameRepository(database), teamRepo),
				service.NewArticleService(articleRepo, logger),
				logger,
			)

			res, err := seeder.Seed(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d teams, %d players, %d games, %d articles\n",
				res.Teams, res.Players, res.Games, res.Articles)
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "truncate seeded tables first")
	return cmd
}

func newAPIKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage webhook API keys",
	}

	var name string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an API key; the key is printed once",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.NewPostgres(cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			plaintext, key, err := newAuthService(database).CreateAPIKey(cmd.Context(), name)
			if err != nil {
				return err
			}
			logger.Info("api key created", zap.String("id", key.ID), zap.String("name", key.Name))
			fmt.Fprintf(cmd.OutOrStdout(), "id:  %s\nkey: %s\n", key.ID, plaintext)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "key owner, e.g. ai-backend")
	_ = create.MarkFlagRequired("name")

	revoke := &cobra.Command{
		Use:   "revoke <id>",
		Short: "Revoke an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.NewPostgres(cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := newAuthService(database).RevokeAPIKey(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "revoked", args[0])
			return nil
		},
	}

	cmd.AddCommand(create, revoke)
	return cmd
}

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user profiles",
	}

	var email, password, displayName, role string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user with any role",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := domain.Role(role)
			if !r.IsValid() {
				return fmt.Errorf("unknown role %q", role)
			}

			database, err := db.NewPostgres(cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			user, err := newAuthService(database).Signup(cmd.Context(), service.SignupRequest{
				Email:       email,
				Password:    password,
				DisplayName: displayName,
				Role:        r,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s user %s (%s)\n", user.Role, user.Email, user.ID)
			return nil
		},
	}
	create.Flags().StringVar(&email, "email", "", "email address")
	create.Flags().StringVar(&password, "password", "", "password, at least 8 characters")
	create.Flags().StringVar(&displayName, "name", "", "display name")
	create.Flags().StringVar(&role, "role", string(domain.RoleEditor), "reader, editor or admin")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the analytics summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.NewPostgres(cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			analytics := service.NewAnalyticsService(
				postgres.NewAnalyticsRepository(database),
				postgres.NewAgentTaskRepository(database),
			)
			summary, err := analytics.Summary(cmd.Context())
			if err != nil {
				return err
			}

			renderSummary(summary)
			return nil
		},
	}
}

func renderSummary(summary *domain.AnalyticsSummary) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetTitle("Sport Scribe, " + time.Now().Format("2006-01-02 15:04"))
	tw.AppendHeader(table.Row{"Metric", "Value"})
	tw.AppendRow(table.Row{"Total articles", humanize.Comma(int64(summary.TotalArticles))})
	tw.AppendRow(table.Row{"Total views", humanize.Comma(int64(summary.TotalViews))})
	tw.AppendRow(table.Row{"Published last 7 days", summary.PublishedLastWeek})
	tw.AppendSeparator()
	for _, s := range summary.ArticlesByStatus {
		tw.AppendRow(table.Row{"Status: " + s.Key, s.Count})
	}
	tw.AppendSeparator()
	for _, s := range summary.ArticlesBySport {
		tw.AppendRow(table.Row{"Sport: " + s.Key, s.Count})
	}
	tw.AppendSeparator()
	for _, s := range summary.AgentTasksByStatus {
		tw.AppendRow(table.Row{"Task: " + s.Key, s.Count})
	}
	tw.Render()

	if len(summary.TopArticles) == 0 {
		return
	}
	top := table.NewWriter()
	top.SetOutputMirror(os.Stdout)
	top.SetTitle("Top articles")
	top.AppendHeader(table.Row{"#", "Title", "Slug", "Views"})
	for i, a := range summary.TopArticles {
		top.AppendRow(table.Row{i + 1, a.Title, a.Slug, humanize.Comma(int64(a.ViewCount))})
	}
	top.Render()
}
