package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

const gameColumns = `
	id, home_team_id, away_team_id, sport, league, season, venue, game_date,
	status, home_score, away_score, created_at, updated_at`

type gameRepository struct {
	executor DBExecutor
}

func NewGameRepository(db *sql.DB) *gameRepository {
	return &gameRepository{executor: db}
}

func (r *gameRepository) Create(ctx context.Context, game *domain.Game) error {
	if game.ID == "" {
		game.ID = uuid.NewString()
	}

	query := `
		INSERT INTO games (
			id, home_team_id, away_team_id, sport, league, season, venue, game_date,
			status, home_score, away_score, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`

	err := r.executor.QueryRowContext(
		ctx,
		query,
		game.ID,
		game.HomeTeamID,
		game.AwayTeamID,
		game.Sport,
		game.League,
		game.Season,
		game.Venue,
		game.GameDate,
		string(game.Status),
		nullable(game.HomeScore),
		nullable(game.AwayScore),
		now(),
	).Scan(&game.CreatedAt)
	if err != nil {
		if fkErr := foreignKeyError(err); fkErr != nil {
			return fkErr
		}
		return fmt.Errorf("insert game: %w", err)
	}

	return nil
}

func (r *gameRepository) GetByID(ctx context.Context, id string) (*domain.Game, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NewNotFoundError("game with id " + id)
	}

	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	game, err := scanGame(r.executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("game with id " + id)
		}
		return nil, err
	}

	return game, nil
}

func (r *gameRepository) List(ctx context.Context, filter domain.GameFilter) ([]*domain.Game, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.Sport != "" {
		args = append(args, filter.Sport)
		conditions = append(conditions, fmt.Sprintf("sport = $%d", len(args)))
	}
	if filter.League != "" {
		args = append(args, filter.League)
		conditions = append(conditions, fmt.Sprintf("league = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.TeamID != "" {
		if !isUUID(filter.TeamID) {
			return nil, domain.NewBadRequestError("team_id filter must be a UUID")
		}
		args = append(args, filter.TeamID)
		conditions = append(conditions, fmt.Sprintf("(home_team_id = $%d OR away_team_id = $%d)", len(args), len(args)))
	}

	query := `SELECT ` + gameColumns + ` FROM games`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	args = append(args, limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY game_date DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []*domain.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	return games, rows.Err()
}

func (r *gameRepository) UpdateScore(ctx context.Context, id string, status domain.GameStatus, homeScore, awayScore *int) error {
	if !isUUID(id) {
		return domain.NewNotFoundError("game with id " + id)
	}

	query := `
		UPDATE games
		SET status = $2, home_score = $3, away_score = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.executor.ExecContext(ctx, query, id, string(status), nullable(homeScore), nullable(awayScore), now())
	if err != nil {
		return fmt.Errorf("update game score: %w", err)
	}
	return expectOneRow(result, domain.NewNotFoundError("game with id "+id))
}

func scanGame(row rowScanner) (*domain.Game, error) {
	game := &domain.Game{}
	var (
		status    string
		homeScore sql.NullInt64
		awayScore sql.NullInt64
		updatedAt sql.NullTime
	)
	err := row.Scan(
		&game.ID,
		&game.HomeTeamID,
		&game.AwayTeamID,
		&game.Sport,
		&game.League,
		&game.Season,
		&game.Venue,
		&game.GameDate,
		&status,
		&homeScore,
		&awayScore,
		&game.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	game.Status = domain.GameStatus(status)
	game.HomeScore = nullIntPtr(homeScore)
	game.AwayScore = nullIntPtr(awayScore)
	game.UpdatedAt = nullTimePtr(updatedAt)
	return game, nil
}
