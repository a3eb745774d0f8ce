package kafka

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	sdk "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (sdk.Message, error)
	CommitMessages(ctx context.Context, msgs ...sdk.Message) error
	Close() error
}

// StatusHandler applies task progress reported by the AI backend.
type StatusHandler interface {
	ApplyStatusUpdate(ctx context.Context, update domain.TaskStatusUpdate) error
}

// StatusMessage is the wire form of a task status report.
type StatusMessage struct {
	TaskID    string  `json:"task_id"`
	Status    string  `json:"status"`
	ArticleID *string `json:"article_id,omitempty"`
	Error     string  `json:"error,omitempty"`
}

type StatusConsumer struct {
	reader  messageReader
	handler StatusHandler
	logger  *zap.Logger
}

func NewStatusConsumer(brokers []string, topic, groupID string, handler StatusHandler, logger *zap.Logger) *StatusConsumer {
	reader := sdk.NewReader(sdk.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 1 << 20,
	})
	return newStatusConsumer(reader, handler, logger)
}

func newStatusConsumer(reader messageReader, handler StatusHandler, logger *zap.Logger) *StatusConsumer {
	return &StatusConsumer{reader: reader, handler: handler, logger: logger}
}

// Run consumes until ctx is cancelled. Malformed messages and handler
// failures are logged and committed so one bad record cannot stall the topic.
func (c *StatusConsumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("fetch status message: %w", err)
		}

		c.handle(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("commit status message: %w", err)
		}
	}
}

func (c *StatusConsumer) handle(ctx context.Context, msg sdk.Message) {
	update, err := decodeStatusMessage(msg.Value)
	if err != nil {
		c.logger.Warn("dropping malformed status message",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return
	}

	if err := c.handler.ApplyStatusUpdate(ctx, update); err != nil {
		c.logger.Error("failed to apply task status",
			zap.String("task_id", update.TaskID),
			zap.String("status", string(update.Status)),
			zap.Error(err),
		)
	}
}

func (c *StatusConsumer) Close() error {
	return c.reader.Close()
}

func decodeStatusMessage(value []byte) (domain.TaskStatusUpdate, error) {
	var m StatusMessage
	if err := json.Unmarshal(value, &m); err != nil {
		return domain.TaskStatusUpdate{}, err
	}
	if m.TaskID == "" {
		return domain.TaskStatusUpdate{}, errors.New("missing task_id")
	}
	status := domain.TaskStatus(m.Status)
	if !status.IsValid() {
		return domain.TaskStatusUpdate{}, fmt.Errorf("unknown status %q", m.Status)
	}
	return domain.TaskStatusUpdate{
		TaskID:    m.TaskID,
		Status:    status,
		ArticleID: m.ArticleID,
		Error:     m.Error,
	}, nil
}
