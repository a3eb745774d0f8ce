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

type teamRepository struct {
	executor DBExecutor
}

func NewTeamRepository(db *sql.DB) *teamRepository {
	return &teamRepository{executor: db}
}

func NewTeamRepositoryWithTx(tx *sql.Tx) *teamRepository {
	return &teamRepository{executor: tx}
}

// Create inserts the team, or refreshes the descriptive fields when a team
// with the same name already exists in the league.
func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	if team.ID == "" {
		team.ID = uuid.NewString()
	}

	query := `
		INSERT INTO teams (id, name, city, sport, league, abbreviation, logo_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name, league) DO UPDATE
		SET city = EXCLUDED.city, sport = EXCLUDED.sport, abbreviation = EXCLUDED.abbreviation,
			logo_url = EXCLUDED.logo_url, updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at
	`

	var updatedAt sql.NullTime
	err := r.executor.QueryRowContext(
		ctx,
		query,
		team.ID,
		team.Name,
		team.City,
		team.Sport,
		team.League,
		team.Abbreviation,
		team.LogoURL,
		now(),
	).Scan(&team.ID, &team.CreatedAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	team.UpdatedAt = nullTimePtr(updatedAt)

	return nil
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NewNotFoundError("team with id " + id)
	}

	query := `
		SELECT id, name, city, sport, league, abbreviation, logo_url, created_at, updated_at
		FROM teams
		WHERE id = $1
	`

	team, err := scanTeam(r.executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("team with id " + id)
		}
		return nil, err
	}

	return team, nil
}

func (r *teamRepository) List(ctx context.Context, sport, league string) ([]*domain.Team, error) {
	var (
		conditions []string
		args       []any
	)
	if sport != "" {
		args = append(args, sport)
		conditions = append(conditions, fmt.Sprintf("sport = $%d", len(args)))
	}
	if league != "" {
		args = append(args, league)
		conditions = append(conditions, fmt.Sprintf("league = $%d", len(args)))
	}

	query := `SELECT id, name, city, sport, league, abbreviation, logo_url, created_at, updated_at FROM teams`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY league, name"

	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*domain.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

func scanTeam(row rowScanner) (*domain.Team, error) {
	team := &domain.Team{}
	var updatedAt sql.NullTime
	err := row.Scan(
		&team.ID,
		&team.Name,
		&team.City,
		&team.Sport,
		&team.League,
		&team.Abbreviation,
		&team.LogoURL,
		&team.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	team.UpdatedAt = nullTimePtr(updatedAt)
	return team, nil
}
