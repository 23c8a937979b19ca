package app

import (
	"go-cpq/internal/auth"
	"go-cpq/internal/config"
	"go-cpq/internal/customer"
	"go-cpq/internal/dashboard"
	"go-cpq/internal/document"
	"go-cpq/internal/license"
	"go-cpq/internal/messaging/kafka"
	"go-cpq/internal/middleware"
	"go-cpq/internal/order"
	"go-cpq/internal/poc"
	"go-cpq/internal/product"
	"go-cpq/internal/quote"
	"go-cpq/internal/rbac"
	"go-cpq/internal/rbac/infra"
	"go-cpq/internal/shared/counter"
	"go-cpq/internal/shared/database"
	"go-cpq/internal/shared/storage"
	"go-cpq/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type modules struct {
	cfg      *config.Config
	gormDB   *gorm.DB
	rdb      *redis.Client
	store    storage.Storage
	renderer document.Renderer
	verifier auth.Verifier
	logger   *zap.Logger
}

func registerModules(router *gin.Engine, m modules) error {
	tx := database.NewTxManager(m.gormDB)

	// --- Repositories ---
	userRepo := user.NewRepository(m.gormDB)
	customerRepo := customer.NewRepository(m.gormDB)
	pocRepo := poc.NewRepository(m.gormDB)
	productRepo := product.NewRepository(m.gormDB)
	quoteRepo := quote.NewRepository(m.gormDB)
	orderRepo := order.NewRepository(m.gormDB)
	licenseRepo := license.NewRepository(m.gormDB)
	dashboardRepo := dashboard.NewRepository(m.gormDB)
	counterRepo := counter.NewRepository(m.gormDB)

	// Events are only staged when somebody publishes them.
	var outboxRepo kafka.OutboxRepository
	if len(m.cfg.Kafka.Brokers) > 0 {
		outboxRepo = kafka.NewOutboxRepository(m.gormDB)
	}

	// --- RBAC Core ---
	policies, groupings := rbac.DefaultPolicies()
	enforcer, err := infra.NewEnforcer(policies, groupings)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, m.logger)

	// --- Services ---
	userService := user.NewService(tx, userRepo, m.logger)
	customerService := customer.NewService(customerRepo, m.store, m.cfg.Storage.DocsContainer, m.rdb, m.logger)
	pocService := poc.NewService(tx, pocRepo, m.logger)
	productService := product.NewService(productRepo, m.store, m.cfg.Storage.ImagesContainer, m.rdb, m.logger)
	quoteService := quote.NewService(
		tx,
		quoteRepo,
		counterRepo,
		outboxRepo,
		m.renderer,
		m.store,
		quote.PDFOptions{Container: m.cfg.Storage.QuotePDFs, LogoURL: m.cfg.PDF.LogoURL},
		m.logger,
	)
	orderService := order.NewService(
		tx,
		orderRepo,
		counterRepo,
		outboxRepo,
		m.renderer,
		m.store,
		m.cfg.Storage.DocsContainer,
		m.cfg.PDF.LogoURL,
		m.logger,
	)
	licenseService := license.NewService(tx, licenseRepo, m.store, m.cfg.Storage.DocsContainer, m.logger)
	dashboardService := dashboard.NewService(dashboardRepo, m.rdb, m.logger)

	// --- Handlers ---
	userHandler := user.NewHandler(userService, m.logger)
	customerHandler := customer.NewHandler(customerService, m.logger)
	pocHandler := poc.NewHandler(pocService, m.logger)
	productHandler := product.NewHandler(productService, m.logger)
	quoteHandler := quote.NewHandler(quoteService, m.logger)
	orderHandler := order.NewHandler(orderService, m.logger)
	licenseHandler := license.NewHandler(licenseService, m.logger)
	dashboardHandler := dashboard.NewHandler(dashboardService, m.logger)
	rbacHandler := rbac.NewHandler(rbacService, m.logger)

	authn := &middleware.Authenticator{
		Verifier: m.verifier,
		Users:    userService,
		Redis:    m.rdb,
		Logger:   m.logger,
	}

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		user.RegisterRoutes(api, userHandler, authn, rbacService)
		customer.RegisterRoutes(api, customerHandler, authn, rbacService)
		poc.RegisterRoutes(api, pocHandler, authn, rbacService)
		product.RegisterRoutes(api, productHandler, authn, rbacService)
		quote.RegisterRoutes(api, quoteHandler, authn, rbacService)
		order.RegisterRoutes(api, orderHandler, authn, rbacService)
		license.RegisterRoutes(api, licenseHandler, authn, rbacService)
		dashboard.RegisterRoutes(api, dashboardHandler, authn, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, authn)
	}

	return nil
}
