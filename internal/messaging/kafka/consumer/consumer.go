package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// DashboardInvalidator drops cached dashboard data for a company.
type DashboardInvalidator interface {
	Invalidate(ctx context.Context, companyName string) error
}

type lifecycleEvent struct {
	EventType   string `json:"event_type"`
	CompanyName string `json:"company_name"`
}

// ConsumeLifecycle invalidates the company dashboard for every quote or order
// lifecycle event.
func ConsumeLifecycle(
	ctx context.Context,
	reader MessageReader,
	dashboard DashboardInvalidator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.lifecycle")
	log.Info("lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("lifecycle consumer stopped")
				return
			}
			log.Error("fetch lifecycle message failed", zap.Error(err))
			continue
		}

		var event lifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.CompanyName == "" {
			log.Error("decode lifecycle event failed",
				zap.String("topic", msg.Topic),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := dashboard.Invalidate(ctx, event.CompanyName); err != nil {
			log.Error("invalidate dashboard failed",
				zap.String("event_type", event.EventType),
				zap.String("company_name", event.CompanyName),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit lifecycle message failed", zap.Error(err))
			continue
		}

		log.Debug("dashboard invalidated from lifecycle event",
			zap.String("event_type", event.EventType),
			zap.String("company_name", event.CompanyName),
		)
	}
}
