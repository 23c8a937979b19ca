package producer

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-cpq/internal/messaging/kafka"
	kafkamock "go-cpq/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	written []kafkago.Message
	failFor map[string]bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if w.failFor[string(m.Key)] {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkamock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		event := kafka.OutboxEvent{
			ID:            "evt-1",
			RequestID:     "req-1",
			AggregateType: "quote",
			AggregateID:   "12",
			EventType:     "quote.created",
			Topic:         "cpq.quote.lifecycle.v1",
			Payload:       []byte(`{"quote_id":12}`),
			Status:        kafka.OutboxStatusPending,
		}

		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{event}, nil)
		repo.EXPECT().MarkSent(ctx, "evt-1").Return(nil)

		res, err := processPendingEvents(ctx, repo, writer, zap.NewNop())
		assert.NoError(t, err)
		assert.Equal(t, batchResult{Sent: 1}, res)
		assert.Len(t, writer.written, 1)

		msg := writer.written[0]
		assert.Equal(t, "cpq.quote.lifecycle.v1", msg.Topic)
		assert.Equal(t, "12", string(msg.Key))
		assert.Len(t, msg.Headers, 3)
		assert.Equal(t, "request_id", msg.Headers[2].Key)
	})

	t.Run("publish failure marks failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkamock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failFor: map[string]bool{"7": true}}

		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{
			{ID: "evt-7", AggregateID: "7", Topic: "cpq.order.lifecycle.v1", Payload: []byte(`{}`)},
			{ID: "evt-8", AggregateID: "8", Topic: "cpq.order.lifecycle.v1", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkFailed(ctx, "evt-7", "broker unavailable").Return(nil)
		repo.EXPECT().MarkSent(ctx, "evt-8").Return(nil)

		res, err := processPendingEvents(ctx, repo, writer, zap.NewNop())
		assert.NoError(t, err)
		assert.Equal(t, batchResult{Sent: 1, Failed: 1}, res)
		assert.Len(t, writer.written, 1)
	})

	t.Run("bookkeeping errors do not stop the batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkamock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failFor: map[string]bool{"3": true}}

		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{
			{ID: "evt-3", AggregateType: "order", AggregateID: "3", Topic: "cpq.order.lifecycle.v1", Payload: []byte(`{}`)},
			{ID: "evt-4", AggregateType: "quote", AggregateID: "4", Topic: "cpq.quote.lifecycle.v1", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkFailed(ctx, "evt-3", "broker unavailable").Return(errors.New("db down"))
		repo.EXPECT().MarkSent(ctx, "evt-4").Return(errors.New("db down"))

		res, err := processPendingEvents(ctx, repo, writer, zap.NewNop())
		assert.NoError(t, err)
		assert.Equal(t, batchResult{Sent: 1, Failed: 1}, res)
	})

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkamock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, batchSize).Return(nil, errors.New("db down"))

		_, err := processPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("nothing pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkamock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{}, nil)

		res, err := processPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())
		assert.NoError(t, err)
		assert.Equal(t, batchResult{}, res)
	})
}

func TestProcessOutboxEvents_DrainsOnStartAndStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkamock.NewMockOutboxRepository(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	repo.EXPECT().ListPending(gomock.Any(), batchSize).DoAndReturn(
		func(context.Context, int) ([]kafka.OutboxEvent, error) {
			cancel()
			return nil, nil
		}).MinTimes(1)

	done := make(chan struct{})
	go func() {
		ProcessOutboxEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), time.Hour)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
