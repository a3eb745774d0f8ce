package kafka

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	sdk "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...sdk.Message) error
	Close() error
}

// GenerationRequest is the message the AI backend consumes.
type GenerationRequest struct {
	TaskID       string    `json:"task_id"`
	GameID       string    `json:"game_id"`
	ArticleType  string    `json:"article_type"`
	TargetLength int       `json:"target_length"`
	Priority     string    `json:"priority"`
	RequestedAt  time.Time `json:"requested_at"`
}

type GenerationPublisher struct {
	writer messageWriter
	logger *zap.Logger
}

func NewGenerationPublisher(brokers []string, topic string, logger *zap.Logger) *GenerationPublisher {
	writer := &sdk.Writer{
		Addr:                   sdk.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &sdk.Hash{},
		RequiredAcks:           sdk.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return newGenerationPublisher(writer, logger)
}

func newGenerationPublisher(writer messageWriter, logger *zap.Logger) *GenerationPublisher {
	return &GenerationPublisher{writer: writer, logger: logger}
}

func (p *GenerationPublisher) PublishGenerationRequest(ctx context.Context, task *domain.AgentTask) error {
	value, err := json.Marshal(toGenerationRequest(task))
	if err != nil {
		return fmt.Errorf("encode generation request: %w", err)
	}

	err = p.writer.WriteMessages(ctx, sdk.Message{
		Key:   []byte(task.ID),
		Value: value,
		Headers: []sdk.Header{
			{Key: "priority", Value: []byte(task.Priority)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish generation request %s: %w", task.ID, err)
	}

	p.logger.Debug("generation request published",
		zap.String("task_id", task.ID),
		zap.String("game_id", task.GameID),
	)
	return nil
}

func (p *GenerationPublisher) Close() error {
	return p.writer.Close()
}

func toGenerationRequest(task *domain.AgentTask) GenerationRequest {
	return GenerationRequest{
		TaskID:       task.ID,
		GameID:       task.GameID,
		ArticleType:  string(task.ArticleType),
		TargetLength: task.TargetLength,
		Priority:     string(task.Priority),
		RequestedAt:  task.CreatedAt,
	}
}

// NopPublisher drops requests. Used when no brokers are configured.
type NopPublisher struct {
	logger *zap.Logger
}

func NewNopPublisher(logger *zap.Logger) *NopPublisher {
	return &NopPublisher{logger: logger}
}

func (p *NopPublisher) PublishGenerationRequest(_ context.Context, task *domain.AgentTask) error {
	p.logger.Warn("kafka disabled, generation request not published", zap.String("task_id", task.ID))
	return nil
}

func (p *NopPublisher) Close() error {
	return nil
}
