package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bagdasarian/sport-scribe/internal/repository"
)

// Publisher periodically publishes scheduled articles whose time has come.
type Publisher struct {
	articleRepo repository.ArticleRepository
	interval    time.Duration
	batchSize   int
	logger      *zap.Logger
	now         func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewPublisher(articleRepo repository.ArticleRepository, interval time.Duration, batchSize int, logger *zap.Logger) *Publisher {
	if interval <= 0 {
		interval = time.Minute
	}
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Publisher{
		articleRepo: articleRepo,
		interval:    interval,
		batchSize:   batchSize,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
		stop:        make(chan struct{}),
	}
}

// Start runs one pass immediately, then one per interval until Stop or ctx
// cancellation.
func (p *Publisher) Start(ctx context.Context) {
	p.wg.Add(1)
	go p.run(ctx)
}

// Stop signals the loop and waits for the in-flight pass to finish.
func (p *Publisher) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	p.wg.Wait()
}

func (p *Publisher) run(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if _, err := p.PublishDue(ctx); err != nil && ctx.Err() == nil {
			p.logger.Error("scheduled publish pass failed", zap.Error(err))
		}

		select {
		case <-p.stop:
			p.logger.Info("scheduled publisher stopping")
			return
		case <-ctx.Done():
			p.logger.Info("context canceled, scheduled publisher exiting")
			return
		case <-ticker.C:
		}
	}
}

// PublishDue publishes up to one batch of due articles and returns how many
// were published. A failure on one article does not stop the batch.
func (p *Publisher) PublishDue(ctx context.Context) (int, error) {
	now := p.now()

	due, err := p.articleRepo.ListDueScheduled(ctx, now, p.batchSize)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, article := range due {
		if ctx.Err() != nil {
			return published, ctx.Err()
		}

		publishedAt := now
		if article.ScheduledAt != nil {
			publishedAt = *article.ScheduledAt
		}

		ok, err := p.articleRepo.PublishScheduled(ctx, article.ID, publishedAt)
		if err != nil {
			p.logger.Error("failed to publish scheduled article",
				zap.String("article_id", article.ID),
				zap.Error(err),
			)
			continue
		}
		if !ok {
			p.logger.Debug("article no longer scheduled, skipped",
				zap.String("article_id", article.ID),
			)
			continue
		}
		published++
		p.logger.Info("scheduled article published",
			zap.String("article_id", article.ID),
			zap.String("slug", article.Slug),
		)
	}

	return published, nil
}
