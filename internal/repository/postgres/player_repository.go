package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

type playerRepository struct {
	executor DBExecutor
}

func NewPlayerRepository(db *sql.DB) *playerRepository {
	return &playerRepository{executor: db}
}

func (r *playerRepository) Create(ctx context.Context, player *domain.Player) error {
	if player.ID == "" {
		player.ID = uuid.NewString()
	}

	query := `
		INSERT INTO players (id, team_id, name, position, jersey_number, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.executor.QueryRowContext(
		ctx,
		query,
		player.ID,
		player.TeamID,
		player.Name,
		player.Position,
		nullable(player.JerseyNumber),
		player.IsActive,
		now(),
	).Scan(&player.CreatedAt)
	if err != nil {
		if fkErr := foreignKeyError(err); fkErr != nil {
			return fkErr
		}
		return fmt.Errorf("insert player: %w", err)
	}

	return nil
}

func (r *playerRepository) GetByID(ctx context.Context, id string) (*domain.Player, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NewNotFoundError("player with id " + id)
	}

	query := `
		SELECT id, team_id, name, position, jersey_number, is_active, created_at, updated_at
		FROM players
		WHERE id = $1
	`

	player, err := scanPlayer(r.executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("player with id " + id)
		}
		return nil, err
	}

	return player, nil
}

func (r *playerRepository) ListByTeam(ctx context.Context, teamID string) ([]*domain.Player, error) {
	if !isUUID(teamID) {
		return nil, domain.NewBadRequestError("team_id must be a UUID")
	}

	query := `
		SELECT id, team_id, name, position, jersey_number, is_active, created_at, updated_at
		FROM players
		WHERE team_id = $1
		ORDER BY is_active DESC, name
	`

	rows, err := r.executor.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []*domain.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}

	return players, rows.Err()
}

func scanPlayer(row rowScanner) (*domain.Player, error) {
	player := &domain.Player{}
	var (
		jersey    sql.NullInt64
		updatedAt sql.NullTime
	)
	err := row.Scan(
		&player.ID,
		&player.TeamID,
		&player.Name,
		&player.Position,
		&jersey,
		&player.IsActive,
		&player.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	player.JerseyNumber = nullIntPtr(jersey)
	player.UpdatedAt = nullTimePtr(updatedAt)
	return player, nil
}
