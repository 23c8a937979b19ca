package app

import (
	"context"
	"net/http"

	"go-cpq/internal/auth"
	"go-cpq/internal/config"
	"go-cpq/internal/document"
	"go-cpq/internal/keepalive"
	"go-cpq/internal/middleware"
	"go-cpq/internal/shared/connection"
	"go-cpq/internal/shared/database"
	"go-cpq/internal/shared/metrics"
	"go-cpq/internal/shared/response"
	"go-cpq/internal/shared/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, mounts every module on router and
// returns a cleanup func that releases what was opened.
func BuildApp(cfg *config.Config, router *gin.Engine, logger *zap.Logger) (func(), error) {
	log := logger.Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	log.Info("database connection established")

	if cfg.HTTP.AutoMigrate {
		if err := database.MigrateUp(sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		log.Info("migrations applied")
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis, cfg.Database.MaxRetries, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	log.Info("redis connection established")

	cleanup := func() {
		_ = rdb.Close()
		_ = sqlDB.Close()
	}

	store, err := storage.NewAzureStorage(cfg.Storage.AccountURL, cfg.Storage.ConnectionString, logger)
	if err != nil {
		cleanup()
		return nil, err
	}

	kf, err := auth.NewJWKSKeyfunc(context.Background(), cfg.Auth.JWKSURL)
	if err != nil {
		cleanup()
		return nil, err
	}
	verifier := auth.NewVerifier(kf, cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.Algorithm)

	renderer := document.NewRenderer(cfg.PDF.FetchTimeout, logger)

	// 2. Global middleware
	m := metrics.New()
	router.Use(
		middleware.RequestID(logger),
		middleware.CORS(cfg.HTTP.AllowedOrigins),
		middleware.Metrics(m),
	)

	router.GET("/metrics", gin.WrapH(m.Handler()))
	router.GET("/health", func(c *gin.Context) {
		if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			response.Error(c, http.StatusServiceUnavailable, "UNHEALTHY", "database unreachable", nil)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "up"}, nil)
	})

	// 3. Register Modules & Routes
	err = registerModules(router, modules{
		cfg:      cfg,
		gormDB:   gormDB,
		rdb:      rdb,
		store:    store,
		renderer: renderer,
		verifier: verifier,
		logger:   logger,
	})
	if err != nil {
		cleanup()
		return nil, err
	}

	scheduler, err := keepalive.Start(cfg.KeepAlive.Schedule, cfg.KeepAlive.URL, logger)
	if err != nil {
		cleanup()
		return nil, err
	}
	if scheduler != nil {
		log.Info("keepalive scheduled", zap.String("url", cfg.KeepAlive.URL))
		dbCleanup := cleanup
		cleanup = func() {
			<-scheduler.Stop().Done()
			dbCleanup()
		}
	}

	return cleanup, nil
}
