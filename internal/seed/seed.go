// Package seed loads a small set of sample teams, players, games and
// articles for local development.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/service"
)

type Seeder struct {
	teams    service.TeamService
	players  service.PlayerService
	games    service.GameService
	articles service.ArticleService
	logger   *zap.Logger
	now      func() time.Time
}

type Result struct {
	Teams    int
	Players  int
	Games    int
	Articles int
}

func NewSeeder(
	teams service.TeamService,
	players service.PlayerService,
	games service.GameService,
	articles service.ArticleService,
	logger *zap.Logger,
) *Seeder {
	return &Seeder{
		teams:    teams,
		players:  players,
		games:    games,
		articles: articles,
		logger:   logger,
		now:      time.Now,
	}
}

type sampleTeam struct {
	name, city, sport, league, abbreviation string
}

type samplePlayer struct {
	team     int
	name     string
	position string
	jersey   int
}

type sampleGame struct {
	home, away    int
	offset        time.Duration
	status        domain.GameStatus
	homeScore     *int
	awayScore     *int
	venue, season string
}

var sampleTeams = []sampleTeam{
	{"Lakers", "Los Angeles", "basketball", "nba", "LAL"},
	{"Warriors", "Golden State", "basketball", "nba", "GSW"},
	{"Cowboys", "Dallas", "american_football", "nfl", "DAL"},
	{"Patriots", "New England", "american_football", "nfl", "NE"},
}

var samplePlayers = []samplePlayer{
	{0, "LeBron James", "Forward", 6},
	{1, "Stephen Curry", "Guard", 30},
	{2, "Dak Prescott", "Quarterback", 4},
	{3, "Mac Jones", "Quarterback", 10},
}

func score(v int) *int { return &v }

var sampleGames = []sampleGame{
	{home: 0, away: 1, offset: -24 * time.Hour, status: domain.GameStatusFinal, homeScore: score(112), awayScore: score(108), venue: "Crypto.com Arena", season: "2024-25"},
	{home: 2, away: 3, offset: 7 * 24 * time.Hour, status: domain.GameStatusScheduled, venue: "AT&T Stadium", season: "2024"},
}

// Seed creates the sample data through the services, so slugs, name
// cleanup and validation match what the API would produce.
func (s *Seeder) Seed(ctx context.Context) (*Result, error) {
	res := &Result{}

	teams := make([]*domain.Team, 0, len(sampleTeams))
	for _, t := range sampleTeams {
		team, err := s.teams.CreateTeam(ctx, &domain.Team{
			Name:         t.name,
			City:         t.city,
			Sport:        t.sport,
			League:       t.league,
			Abbreviation: t.abbreviation,
		})
		if err != nil {
			return res, fmt.Errorf("seed team %s: %w", t.name, err)
		}
		teams = append(teams, team)
		res.Teams++
	}

	for _, p := range samplePlayers {
		jersey := p.jersey
		_, err := s.players.CreatePlayer(ctx, &domain.Player{
			TeamID:       teams[p.team].ID,
			Name:         p.name,
			Position:     p.position,
			JerseyNumber: &jersey,
			IsActive:     true,
		})
		if err != nil {
			return res, fmt.Errorf("seed player %s: %w", p.name, err)
		}
		res.Players++
	}

	now := s.now().UTC().Truncate(time.Minute)
	games := make([]*domain.Game, 0, len(sampleGames))
	for _, g := range sampleGames {
		game, err := s.games.CreateGame(ctx, &domain.Game{
			HomeTeamID: teams[g.home].ID,
			AwayTeamID: teams[g.away].ID,
			Season:     g.season,
			Venue:      g.venue,
			GameDate:   now.Add(g.offset),
			Status:     g.status,
			HomeScore:  g.homeScore,
			AwayScore:  g.awayScore,
		})
		if err != nil {
			return res, fmt.Errorf("seed game: %w", err)
		}
		games = append(games, game)
		res.Games++
	}

	confidence := decimal.RequireFromString("0.95")
	_, err := s.articles.CreateArticle(ctx, &domain.Article{
		Title: "Lakers Edge Warriors in Thrilling Overtime Victory",
		Content: "In a spectacular display of basketball prowess, the Los Angeles Lakers " +
			"defeated the Golden State Warriors 112-108 in overtime at Crypto.com Arena.",
		Summary:      "Lakers win in overtime against Warriors",
		Status:       domain.ArticleStatusPublished,
		Sport:        "basketball",
		League:       "nba",
		Tags:         []string{"basketball", "NBA", "Lakers", "Warriors"},
		GameID:       &games[0].ID,
		AIConfidence: &confidence,
	})
	if err != nil {
		return res, fmt.Errorf("seed article: %w", err)
	}
	res.Articles++

	s.logger.Info("seed data loaded",
		zap.Int("teams", res.Teams),
		zap.Int("players", res.Players),
		zap.Int("games", res.Games),
		zap.Int("articles", res.Articles),
	)
	return res, nil
}

// Clear empties the seeded tables. Tasks and webhook deliveries that point at
// them go too.
func Clear(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "TRUNCATE articles, games, players, teams CASCADE"); err != nil {
		return fmt.Errorf("clear seed data: %w", err)
	}
	return nil
}
