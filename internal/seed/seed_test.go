package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/service"
)

func newTestSeeder() (*Seeder, *service.MockTeamRepository, *service.MockPlayerRepository, *service.MockGameRepository, *service.MockArticleRepository) {
	teams := new(service.MockTeamRepository)
	players := new(service.MockPlayerRepository)
	games := new(service.MockGameRepository)
	articles := new(service.MockArticleRepository)
	logger := zap.NewNop()

	s := NewSeeder(
		service.NewTeamService(teams, players),
		service.NewPlayerService(players, teams),
		service.NewGameService(games, teams),
		service.NewArticleService(articles, logger),
		logger,
	)
	s.now = func() time.Time { return time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC) }
	return s, teams, players, games, articles
}

func TestSeeder_Seed(t *testing.T) {
	s, teams, players, games, articles := newTestSeeder()
	ctx := context.Background()

	teams.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		team := args.Get(1).(*domain.Team)
		team.ID = "team-" + team.Abbreviation
	}).Return(nil).Times(4)
	for _, abbr := range []string{"LAL", "GSW"} {
		teams.On("GetByID", mock.Anything, "team-"+abbr).
			Return(&domain.Team{ID: "team-" + abbr, Sport: "basketball", League: "nba"}, nil)
	}
	for _, abbr := range []string{"DAL", "NE"} {
		teams.On("GetByID", mock.Anything, "team-"+abbr).
			Return(&domain.Team{ID: "team-" + abbr, Sport: "american_football", League: "nfl"}, nil)
	}
	players.On("Create", mock.Anything, mock.Anything).Return(nil).Times(4)
	games.On("Create", mock.Anything, mock.MatchedBy(func(g *domain.Game) bool {
		return g.Sport != "" && g.League != ""
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Game).ID = "game-" + args.Get(1).(*domain.Game).HomeTeamID
	}).Return(nil).Times(2)
	articles.On("GetBySlug", mock.Anything, "lakers-edge-warriors-in-thrilling-overtime-victory").
		Return(nil, domain.NewNotFoundError("article")).Once()
	articles.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Article) bool {
		return a.GameID != nil && *a.GameID == "game-team-LAL" && a.PublishedAt != nil
	})).Return(nil).Once()

	res, err := s.Seed(ctx)

	require.NoError(t, err)
	assert.Equal(t, &Result{Teams: 4, Players: 4, Games: 2, Articles: 1}, res)
	teams.AssertExpectations(t)
	players.AssertExpectations(t)
	games.AssertExpectations(t)
	articles.AssertExpectations(t)
}

func TestSeeder_Seed_StopsOnError(t *testing.T) {
	s, teams, _, _, _ := newTestSeeder()
	teams.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert team: connection refused")).Once()

	res, err := s.Seed(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed team Lakers")
	assert.Equal(t, 0, res.Teams)
}

func TestClear(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlMock.ExpectExec("TRUNCATE articles, games, players, teams CASCADE").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Clear(context.Background(), db))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
