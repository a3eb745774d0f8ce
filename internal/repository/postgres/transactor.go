package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bagdasarian/sport-scribe/internal/repository"
)

type transactor struct {
	db *sql.DB
}

func NewTransactor(db *sql.DB) *transactor {
	return &transactor{db: db}
}

func (t *transactor) WithinTx(ctx context.Context, fn func(repos repository.TxRepositories) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	repos := repository.TxRepositories{
		Articles:   NewArticleRepositoryWithTx(tx),
		Deliveries: NewWebhookDeliveryRepositoryWithTx(tx),
		Tasks:      NewAgentTaskRepositoryWithTx(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
