package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-cpq/internal/events"
	"go-cpq/internal/quote"
	quoteerrors "go-cpq/internal/quote/errors"
	"go-cpq/internal/shared/apperror"

	"go.uber.org/zap"
)

// QuotePDFGenerator is the part of quote.Service the consumer needs.
type QuotePDFGenerator interface {
	GeneratePDF(ctx context.Context, companyName string, id uint) (quote.QuoteResponse, error)
}

func ConsumeQuotePDFRequested(
	ctx context.Context,
	reader MessageReader,
	quotes QuotePDFGenerator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.quote_pdf")
	log.Info("quote pdf consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("quote pdf consumer stopped")
				return
			}
			log.Error("fetch quote pdf message failed", zap.Error(err))
			continue
		}

		var event events.QuotePDFRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode quote pdf event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = quotes.GeneratePDF(ctx, event.CompanyName, event.QuoteID)
		if err != nil {
			if isPermanent(err) {
				log.Warn("quote pdf request dropped",
					zap.Uint("quote_id", event.QuoteID),
					zap.String("company_name", event.CompanyName),
					zap.Error(err),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("generate quote pdf failed",
				zap.Uint("quote_id", event.QuoteID),
				zap.String("company_name", event.CompanyName),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit quote pdf message failed", zap.Error(err))
			continue
		}

		log.Info("quote pdf generated",
			zap.Uint("quote_id", event.QuoteID),
			zap.String("company_name", event.CompanyName),
		)
	}
}

// isPermanent reports errors that retrying the same message cannot fix.
func isPermanent(err error) bool {
	return errors.Is(err, quoteerrors.ErrQuoteNotFound) || errors.Is(err, apperror.ErrForbidden)
}
