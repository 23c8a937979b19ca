package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go-cpq/internal/config"
	"go-cpq/internal/dashboard"
	"go-cpq/internal/document"
	"go-cpq/internal/events"
	"go-cpq/internal/messaging/kafka/consumer"
	"go-cpq/internal/quote"
	"go-cpq/internal/shared/connection"
	"go-cpq/internal/shared/counter"
	"go-cpq/internal/shared/database"
	"go-cpq/internal/shared/storage"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer renders requested quote PDFs and keeps dashboard caches fresh
// until SIGINT/SIGTERM.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis, cfg.Database.MaxRetries, logger)
	if err != nil {
		return err
	}
	defer rdb.Close()

	store, err := storage.NewAzureStorage(cfg.Storage.AccountURL, cfg.Storage.ConnectionString, logger)
	if err != nil {
		return err
	}

	// The consumer never stages events, so the quote service runs without an outbox.
	quoteService := quote.NewService(
		database.NewTxManager(gormDB),
		quote.NewRepository(gormDB),
		counter.NewRepository(gormDB),
		nil,
		document.NewRenderer(cfg.PDF.FetchTimeout, logger),
		store,
		quote.PDFOptions{Container: cfg.Storage.QuotePDFs, LogoURL: cfg.PDF.LogoURL},
		logger,
	)
	dashboardService := dashboard.NewService(dashboard.NewRepository(gormDB), rdb, logger)

	pdfReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          events.QuotePDFRequestedTopic,
		GroupID:        cfg.Kafka.GroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer pdfReader.Close()

	lifecycleReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.Kafka.Brokers,
		GroupTopics:    []string{events.QuoteLifecycleTopic, events.OrderLifecycleTopic},
		GroupID:        cfg.Kafka.GroupID + "-dashboard",
		CommitInterval: 0,
		StartOffset:    kafkago.LastOffset,
	})
	defer lifecycleReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeQuotePDFRequested(ctx, pdfReader, quoteService, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumeLifecycle(ctx, lifecycleReader, dashboardService, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("consumer shutting down")
	cancel()
	wg.Wait()

	return nil
}
