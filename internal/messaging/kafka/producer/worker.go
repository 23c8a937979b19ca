package producer

import (
	"context"
	"time"

	"go-cpq/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	batchSize           = 50
	defaultPollInterval = 3 * time.Second
)

// batchResult counts what one poll did with the pending quote and order events.
type batchResult struct {
	Sent   int
	Failed int
}

// ProcessOutboxEvents publishes staged quote/order events until ctx is done.
// The backlog is drained once at start, then every pollInterval.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	log := logger.Named("outbox.publisher")
	log.Info("outbox publisher started",
		zap.Duration("poll_interval", pollInterval),
		zap.Int("batch_size", batchSize),
	)

	poll := func() {
		res, err := processPendingEvents(ctx, repo, writer, log)
		if err != nil {
			log.Error("list pending outbox events failed", zap.Error(err))
			return
		}
		if res.Sent+res.Failed > 0 {
			log.Info("outbox batch published", zap.Int("sent", res.Sent), zap.Int("failed", res.Failed))
		}
	}

	poll()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("outbox publisher stopped")
			return
		case <-ticker.C:
			poll()
		}
	}
}

func processPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) (batchResult, error) {
	var res batchResult

	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return res, err
	}

	for _, event := range events {
		l := logger.With(
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("aggregate", event.AggregateType+"/"+event.AggregateID),
			zap.String("request_id", event.RequestID),
		)

		if err := publishEvent(ctx, writer, event); err != nil {
			res.Failed++
			l.Warn("publish outbox event failed",
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			if markErr := repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				l.Error("mark outbox failed failed", zap.Error(markErr))
			}
			continue
		}

		// Already on kafka; a failed MarkSent means it is published again next poll.
		if err := repo.MarkSent(ctx, event.ID); err != nil {
			l.Error("mark outbox sent failed", zap.Error(err))
		}
		res.Sent++
		l.Debug("outbox event published", zap.String("topic", event.Topic))
	}

	return res, nil
}
