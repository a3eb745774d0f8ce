package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

// DBExecutor is satisfied by both *sql.DB and *sql.Tx.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// foreignKeyError turns an FK violation into BAD_REQUEST naming the column,
// derived from the default constraint name (<table>_<column>_fkey).
// Returns nil for any other error.
func foreignKeyError(err error) *domain.DomainError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != foreignKeyViolation {
		return nil
	}
	column := strings.TrimSuffix(pgErr.ConstraintName, "_fkey")
	column = strings.TrimPrefix(column, pgErr.TableName+"_")
	if column == "" {
		column = "reference"
	}
	return domain.NewBadRequestError("%s references a record that does not exist", column)
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// checkUUIDRef rejects optional reference values that cannot be a UUID
// before they reach a UUID column.
func checkUUIDRef(column string, v *string) error {
	if v == nil || isUUID(*v) {
		return nil
	}
	return domain.NewBadRequestError("%s must be a UUID", column)
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func nullIntPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

// nullable converts optional values into driver arguments, mapping nil
// pointers to SQL NULL.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

func expectOneRow(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}

func now() time.Time {
	return time.Now().UTC()
}
