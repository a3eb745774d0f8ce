package repository

import (
	"context"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

type GameRepository interface {
	Create(ctx context.Context, game *domain.Game) error
	GetByID(ctx context.Context, id string) (*domain.Game, error)
	List(ctx context.Context, filter domain.GameFilter) ([]*domain.Game, error)
	UpdateScore(ctx context.Context, id string, status domain.GameStatus, homeScore, awayScore *int) error
}

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	List(ctx context.Context, sport, league string) ([]*domain.Team, error)
}

type PlayerRepository interface {
	Create(ctx context.Context, player *domain.Player) error
	GetByID(ctx context.Context, id string) (*domain.Player, error)
	ListByTeam(ctx context.Context, teamID string) ([]*domain.Player, error)
}
