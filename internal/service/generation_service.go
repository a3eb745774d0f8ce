package service

import (
	"context"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

// GenerationQueue hands generation requests to the AI backend.
type GenerationQueue interface {
	PublishGenerationRequest(ctx context.Context, task *domain.AgentTask) error
}

type GenerationService interface {
	RequestArticle(ctx context.Context, req GenerationRequest) (*domain.AgentTask, error)
	GetTask(ctx context.Context, id string) (*domain.AgentTask, error)
	ApplyStatusUpdate(ctx context.Context, update domain.TaskStatusUpdate) error
}

type GenerationRequest struct {
	GameID       string
	ArticleType  domain.ArticleType
	TargetLength int
	Priority     domain.Priority
}
