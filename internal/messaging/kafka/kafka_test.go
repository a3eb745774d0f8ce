package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	sdk "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

type fakeWriter struct {
	messages []sdk.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...sdk.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestGenerationPublisher_Publish(t *testing.T) {
	t.Run("keys message by task id", func(t *testing.T) {
		writer := &fakeWriter{}
		publisher := newGenerationPublisher(writer, zap.NewNop())
		created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

		task := &domain.AgentTask{
			ID:           "task-1",
			GameID:       "game-1",
			ArticleType:  domain.ArticleTypeGameRecap,
			TargetLength: 800,
			Priority:     domain.PriorityHigh,
			CreatedAt:    created,
		}

		require.NoError(t, publisher.PublishGenerationRequest(context.Background(), task))
		require.Len(t, writer.messages, 1)

		msg := writer.messages[0]
		assert.Equal(t, "task-1", string(msg.Key))

		var req GenerationRequest
		require.NoError(t, json.Unmarshal(msg.Value, &req))
		assert.Equal(t, GenerationRequest{
			TaskID:       "task-1",
			GameID:       "game-1",
			ArticleType:  "game_recap",
			TargetLength: 800,
			Priority:     "high",
			RequestedAt:  created,
		}, req)
	})

	t.Run("wraps writer error", func(t *testing.T) {
		writerErr := errors.New("leader not available")
		publisher := newGenerationPublisher(&fakeWriter{err: writerErr}, zap.NewNop())

		err := publisher.PublishGenerationRequest(context.Background(), &domain.AgentTask{ID: "task-1"})

		assert.ErrorIs(t, err, writerErr)
	})

	t.Run("close closes writer", func(t *testing.T) {
		writer := &fakeWriter{}
		require.NoError(t, newGenerationPublisher(writer, zap.NewNop()).Close())
		assert.True(t, writer.closed)
	})
}

func TestNopPublisher(t *testing.T) {
	p := NewNopPublisher(zap.NewNop())
	assert.NoError(t, p.PublishGenerationRequest(context.Background(), &domain.AgentTask{ID: "x"}))
	assert.NoError(t, p.Close())
}

// fakeReader serves queued messages, then blocks until ctx is done.
type fakeReader struct {
	mu        sync.Mutex
	queue     []sdk.Message
	committed []sdk.Message
}

func (r *fakeReader) FetchMessage(ctx context.Context) (sdk.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		msg := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return sdk.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...sdk.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error { return nil }

func (r *fakeReader) committedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

type recordingHandler struct {
	mu      sync.Mutex
	updates []domain.TaskStatusUpdate
	err     error
}

func (h *recordingHandler) ApplyStatusUpdate(_ context.Context, update domain.TaskStatusUpdate) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.updates = append(h.updates, update)
	return h.err
}

func TestStatusConsumer_Run(t *testing.T) {
	reader := &fakeReader{queue: []sdk.Message{
		{Offset: 1, Value: []byte(`{"task_id":"t1","status":"running"}`)},
		{Offset: 2, Value: []byte(`not json`)},
		{Offset: 3, Value: []byte(`{"task_id":"t1","status":"exploded"}`)},
		{Offset: 4, Value: []byte(`{"task_id":"t1","status":"completed","article_id":"a1"}`)},
	}}
	handler := &recordingHandler{}
	consumer := newStatusConsumer(reader, handler, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- consumer.Run(ctx) }()

	require.Eventually(t, func() bool { return reader.committedCount() == 4 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	handler.mu.Lock()
	defer handler.mu.Unlock()
	require.Len(t, handler.updates, 2)
	assert.Equal(t, domain.TaskStatusRunning, handler.updates[0].Status)
	assert.Equal(t, domain.TaskStatusCompleted, handler.updates[1].Status)
	require.NotNil(t, handler.updates[1].ArticleID)
	assert.Equal(t, "a1", *handler.updates[1].ArticleID)
}

func TestDecodeStatusMessage(t *testing.T) {
	_, err := decodeStatusMessage([]byte(`{"status":"running"}`))
	assert.Error(t, err)

	update, err := decodeStatusMessage([]byte(`{"task_id":"t","status":"failed","error":"no data"}`))
	require.NoError(t, err)
	assert.Equal(t, "no data", update.Error)
	assert.Nil(t, update.ArticleID)
}
