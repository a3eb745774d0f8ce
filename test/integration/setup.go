//go:build integration

package integration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/bagdasarian/sport-scribe/internal/db"
	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/repository/postgres"
	"github.com/bagdasarian/sport-scribe/internal/service"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:17.7",
		tcpostgres.WithDatabase("sport_scribe_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	database, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.PingContext(ctx))

	applied, err := db.Migrate(ctx, database)
	require.NoError(t, err)
	require.NotEmpty(t, applied)

	return database
}

// seedGame inserts two teams and a finished game between them.
func seedGame(t *testing.T, database *sql.DB) *domain.Game {
	t.Helper()
	ctx := context.Background()

	teamRepo := postgres.NewTeamRepository(database)
	teams := service.NewTeamService(teamRepo, postgres.NewPlayerRepository(database))
	games := service.NewGameService(postgres.NewGameRepository(database), teamRepo)

	home, err := teams.CreateTeam(ctx, &domain.Team{Name: "Arsenal", City: "london", Sport: "football", League: "premier_league", Abbreviation: "ars"})
	require.NoError(t, err)
	away, err := teams.CreateTeam(ctx, &domain.Team{Name: "Chelsea", City: "london", Sport: "football", League: "premier_league", Abbreviation: "che"})
	require.NoError(t, err)

	h, a := 2, 1
	game, err := games.CreateGame(ctx, &domain.Game{
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		Season:     "2024-25",
		Venue:      "Emirates Stadium",
		GameDate:   time.Now().Add(-3 * time.Hour).UTC(),
		Status:     domain.GameStatusFinal,
		HomeScore:  &h,
		AwayScore:  &a,
	})
	require.NoError(t, err)
	return game
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}
