package service

import (
	"context"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

type GameService interface {
	ListGames(ctx context.Context, filter domain.GameFilter) ([]*domain.Game, error)
	GetGame(ctx context.Context, id string) (*domain.Game, error)
	CreateGame(ctx context.Context, game *domain.Game) (*domain.Game, error)
	UpdateScore(ctx context.Context, id string, update ScoreUpdate) (*domain.Game, error)
}

type ScoreUpdate struct {
	Status    domain.GameStatus
	HomeScore *int
	AwayScore *int
}

type TeamService interface {
	ListTeams(ctx context.Context, sport, league string) ([]*domain.Team, error)
	GetTeam(ctx context.Context, id string) (*TeamDetails, error)
	CreateTeam(ctx context.Context, team *domain.Team) (*domain.Team, error)
}

// TeamDetails is a team with its roster.
type TeamDetails struct {
	Team    *domain.Team
	Players []*domain.Player
}

type PlayerService interface {
	ListPlayers(ctx context.Context, teamID string) ([]*domain.Player, error)
	GetPlayer(ctx context.Context, id string) (*domain.Player, error)
	CreatePlayer(ctx context.Context, player *domain.Player) (*domain.Player, error)
}
