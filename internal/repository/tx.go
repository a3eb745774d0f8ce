package repository

import "context"

// TxRepositories are bound to a single transaction.
type TxRepositories struct {
	Articles   ArticleRepository
	Deliveries WebhookDeliveryRepository
	Tasks      AgentTaskRepository
}

// Transactor runs fn in a transaction, committing when fn returns nil and
// rolling back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repos TxRepositories) error) error
}
