package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bagdasarian/sport-scribe/internal/content"
	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/repository"
)

const maxJerseyNumber = 99

type gameService struct {
	gameRepo repository.GameRepository
	teamRepo repository.TeamRepository
}

func NewGameService(gameRepo repository.GameRepository, teamRepo repository.TeamRepository) GameService {
	return &gameService{
		gameRepo: gameRepo,
		teamRepo: teamRepo,
	}
}

func (s *gameService) ListGames(ctx context.Context, filter domain.GameFilter) ([]*domain.Game, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, domain.NewBadRequestError("unknown game status %q", filter.Status)
	}
	filter.Limit = ClampListLimit(filter.Limit)
	return s.gameRepo.List(ctx, filter)
}

func (s *gameService) GetGame(ctx context.Context, id string) (*domain.Game, error) {
	return s.gameRepo.GetByID(ctx, id)
}

// CreateGame checks both teams exist. Sport and league default to the home
// team's.
func (s *gameService) CreateGame(ctx context.Context, game *domain.Game) (*domain.Game, error) {
	if game.HomeTeamID == "" || game.AwayTeamID == "" {
		return nil, domain.NewBadRequestError("home_team_id and away_team_id are required")
	}
	if game.HomeTeamID == game.AwayTeamID {
		return nil, domain.NewBadRequestError("a team cannot play itself")
	}
	if game.GameDate.IsZero() {
		return nil, domain.NewBadRequestError("game_date is required")
	}
	if game.Status == "" {
		game.Status = domain.GameStatusScheduled
	}
	if !game.Status.IsValid() {
		return nil, domain.NewBadRequestError("unknown game status %q", game.Status)
	}
	if err := validateScores(game.HomeScore, game.AwayScore); err != nil {
		return nil, err
	}

	home, err := s.teamRepo.GetByID(ctx, game.HomeTeamID)
	if err != nil {
		return nil, err
	}
	if _, err := s.teamRepo.GetByID(ctx, game.AwayTeamID); err != nil {
		return nil, err
	}

	if game.Sport == "" {
		game.Sport = home.Sport
	}
	if game.League == "" {
		game.League = home.League
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *gameService) UpdateScore(ctx context.Context, id string, update ScoreUpdate) (*domain.Game, error) {
	if !update.Status.IsValid() {
		return nil, domain.NewBadRequestError("unknown game status %q", update.Status)
	}
	if err := validateScores(update.HomeScore, update.AwayScore); err != nil {
		return nil, err
	}

	if err := s.gameRepo.UpdateScore(ctx, id, update.Status, update.HomeScore, update.AwayScore); err != nil {
		return nil, err
	}
	return s.gameRepo.GetByID(ctx, id)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func validateScores(scores ...*int) error {
	for _, score := range scores {
		if score != nil && *score < 0 {
			return domain.NewBadRequestError("scores cannot be negative")
		}
	}
	return nil
}

type teamService struct {
	teamRepo   repository.TeamRepository
	playerRepo repository.PlayerRepository
}

func NewTeamService(teamRepo repository.TeamRepository, playerRepo repository.PlayerRepository) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
	}
}

func (s *teamService) ListTeams(ctx context.Context, sport, league string) ([]*domain.Team, error) {
	return s.teamRepo.List(ctx, strings.ToLower(strings.TrimSpace(sport)), strings.TrimSpace(league))
}

func (s *teamService) GetTeam(ctx context.Context, id string) (*TeamDetails, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	players, err := s.playerRepo.ListByTeam(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	return &TeamDetails{Team: team, Players: players}, nil
}

// CreateTeam upserts by (name, league).
func (s *teamService) CreateTeam(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	team.Name = collapseSpaces(team.Name)
	team.City = content.CleanName(team.City)
	team.Sport = strings.ToLower(strings.TrimSpace(team.Sport))
	team.League = strings.TrimSpace(team.League)
	team.Abbreviation = strings.ToUpper(strings.TrimSpace(team.Abbreviation))

	if team.Name == "" || team.Sport == "" || team.League == "" {
		return nil, domain.NewBadRequestError("name, sport and league are required")
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

type playerService struct {
	playerRepo repository.PlayerRepository
	teamRepo   repository.TeamRepository
}

func NewPlayerService(playerRepo repository.PlayerRepository, teamRepo repository.TeamRepository) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
	}
}

func (s *playerService) ListPlayers(ctx context.Context, teamID string) ([]*domain.Player, error) {
	if teamID == "" {
		return nil, domain.NewBadRequestError("team_id is required")
	}
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	return s.playerRepo.ListByTeam(ctx, teamID)
}

func (s *playerService) GetPlayer(ctx context.Context, id string) (*domain.Player, error) {
	return s.playerRepo.GetByID(ctx, id)
}

func (s *playerService) CreatePlayer(ctx context.Context, player *domain.Player) (*domain.Player, error) {
	player.Name = collapseSpaces(player.Name)
	if player.Name == "" || player.TeamID == "" {
		return nil, domain.NewBadRequestError("name and team_id are required")
	}
	if n := player.JerseyNumber; n != nil && (*n < 0 || *n > maxJerseyNumber) {
		return nil, domain.NewBadRequestError("jersey_number must be between 0 and %d", maxJerseyNumber)
	}

	if _, err := s.teamRepo.GetByID(ctx, player.TeamID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewBadRequestError("team %s does not exist", player.TeamID)
		}
		return nil, err
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}
