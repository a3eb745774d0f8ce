package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

func TestGenerationService_RequestArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("queues task with defaults", func(t *testing.T) {
		tasks := new(MockAgentTaskRepository)
		games := new(MockGameRepository)
		queue := new(MockGenerationQueue)
		svc := NewGenerationService(tasks, games, queue, zap.NewNop())

		games.On("GetByID", mock.Anything, "g1").Return(&domain.Game{ID: "g1"}, nil).Once()
		tasks.On("Create", mock.Anything, mock.MatchedBy(func(task *domain.AgentTask) bool {
			return task.Status == domain.TaskStatusQueued &&
				task.ArticleType == domain.ArticleTypeGameRecap &&
				task.Priority == domain.PriorityNormal &&
				task.TargetLength == defaultTargetLength
		})).Return(nil).Once()
		queue.On("PublishGenerationRequest", mock.Anything, mock.Anything).Return(nil).Once()

		task, err := svc.RequestArticle(ctx, GenerationRequest{GameID: "g1"})

		require.NoError(t, err)
		assert.NotEmpty(t, task.ID)
		tasks.AssertExpectations(t)
		queue.AssertExpectations(t)
	})

	t.Run("publish failure marks task failed", func(t *testing.T) {
		tasks := new(MockAgentTaskRepository)
		games := new(MockGameRepository)
		queue := new(MockGenerationQueue)
		svc := NewGenerationService(tasks, games, queue, zap.NewNop())
		brokerErr := errors.New("no brokers")

		games.On("GetByID", mock.Anything, "g1").Return(&domain.Game{ID: "g1"}, nil).Once()
		tasks.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		queue.On("PublishGenerationRequest", mock.Anything, mock.Anything).Return(brokerErr).Once()
		tasks.On("UpdateStatus", mock.Anything, mock.Anything, domain.TaskStatusFailed, (*string)(nil), "no brokers").Return(nil).Once()

		_, err := svc.RequestArticle(ctx, GenerationRequest{GameID: "g1", ArticleType: domain.ArticleTypePreview})

		assert.ErrorIs(t, err, brokerErr)
		tasks.AssertExpectations(t)
	})

	t.Run("unknown game", func(t *testing.T) {
		games := new(MockGameRepository)
		svc := NewGenerationService(new(MockAgentTaskRepository), games, new(MockGenerationQueue), zap.NewNop())

		games.On("GetByID", mock.Anything, "g404").Return(nil, notFound("game")).Once()

		_, err := svc.RequestArticle(ctx, GenerationRequest{GameID: "g404"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		cases := map[string]GenerationRequest{
			"article type":  {GameID: "g1", ArticleType: "opinion"},
			"priority":      {GameID: "g1", Priority: "urgent"},
			"target length": {GameID: "g1", TargetLength: 20},
		}
		for name, req := range cases {
			t.Run(name, func(t *testing.T) {
				svc := NewGenerationService(new(MockAgentTaskRepository), new(MockGameRepository), new(MockGenerationQueue), zap.NewNop())

				_, err := svc.RequestArticle(ctx, req)
				assert.ErrorIs(t, err, domain.ErrBadRequest)
			})
		}
	})
}

func TestGenerationService_ApplyStatusUpdate(t *testing.T) {
	tasks := new(MockAgentTaskRepository)
	svc := NewGenerationService(tasks, new(MockGameRepository), new(MockGenerationQueue), zap.NewNop())
	articleID := "a1"

	tasks.On("UpdateStatus", mock.Anything, "t1", domain.TaskStatusCompleted, &articleID, "").Return(nil).Once()

	err := svc.ApplyStatusUpdate(context.Background(), domain.TaskStatusUpdate{
		TaskID:    "t1",
		Status:    domain.TaskStatusCompleted,
		ArticleID: &articleID,
	})

	require.NoError(t, err)
	tasks.AssertExpectations(t)
}

func TestGenerationService_GetTask_InvalidID(t *testing.T) {
	svc := NewGenerationService(new(MockAgentTaskRepository), new(MockGameRepository), new(MockGenerationQueue), zap.NewNop())

	_, err := svc.GetTask(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
