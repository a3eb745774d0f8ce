package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/repository"
)

const (
	defaultTargetLength = 800
	minTargetLength     = 100
	maxTargetLength     = 5000
)

type generationService struct {
	taskRepo repository.AgentTaskRepository
	gameRepo repository.GameRepository
	queue    GenerationQueue
	logger   *zap.Logger
}

func NewGenerationService(
	taskRepo repository.AgentTaskRepository,
	gameRepo repository.GameRepository,
	queue GenerationQueue,
	logger *zap.Logger,
) GenerationService {
	return &generationService{
		taskRepo: taskRepo,
		gameRepo: gameRepo,
		queue:    queue,
		logger:   logger,
	}
}

// RequestArticle stores a queued task and publishes it. When publishing
// fails the task is marked failed and the error returned.
func (s *generationService) RequestArticle(ctx context.Context, req GenerationRequest) (*domain.AgentTask, error) {
	if req.ArticleType == "" {
		req.ArticleType = domain.ArticleTypeGameRecap
	}
	if !req.ArticleType.IsValid() {
		return nil, domain.NewBadRequestError("unknown article type %q", req.ArticleType)
	}
	if req.Priority == "" {
		req.Priority = domain.PriorityNormal
	}
	if !req.Priority.IsValid() {
		return nil, domain.NewBadRequestError("unknown priority %q", req.Priority)
	}
	if req.TargetLength == 0 {
		req.TargetLength = defaultTargetLength
	}
	if req.TargetLength < minTargetLength || req.TargetLength > maxTargetLength {
		return nil, domain.NewBadRequestError("target_length must be between %d and %d", minTargetLength, maxTargetLength)
	}

	if _, err := s.gameRepo.GetByID(ctx, req.GameID); err != nil {
		return nil, err
	}

	task := &domain.AgentTask{
		ID:           uuid.NewString(),
		GameID:       req.GameID,
		ArticleType:  req.ArticleType,
		TargetLength: req.TargetLength,
		Priority:     req.Priority,
		Status:       domain.TaskStatusQueued,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	if err := s.queue.PublishGenerationRequest(ctx, task); err != nil {
		if upErr := s.taskRepo.UpdateStatus(ctx, task.ID, domain.TaskStatusFailed, nil, err.Error()); upErr != nil {
			s.logger.Error("failed to mark task failed", zap.String("task_id", task.ID), zap.Error(upErr))
		}
		return nil, fmt.Errorf("queue generation request: %w", err)
	}

	s.logger.Info("article generation requested",
		zap.String("task_id", task.ID),
		zap.String("game_id", task.GameID),
		zap.String("article_type", string(task.ArticleType)),
	)
	return task, nil
}

func (s *generationService) GetTask(ctx context.Context, id string) (*domain.AgentTask, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NewNotFoundError("agent task with id " + id)
	}
	return s.taskRepo.GetByID(ctx, id)
}

func (s *generationService) ApplyStatusUpdate(ctx context.Context, update domain.TaskStatusUpdate) error {
	if !update.Status.IsValid() {
		return domain.NewBadRequestError("unknown task status %q", update.Status)
	}
	return s.taskRepo.UpdateStatus(ctx, update.TaskID, update.Status, update.ArticleID, update.Error)
}
