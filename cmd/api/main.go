package main

import (
	"github.com/chopdesk/chopdesk-api/internal/application/service"
	"github.com/chopdesk/chopdesk-api/internal/config"
	"github.com/chopdesk/chopdesk-api/internal/infrastructure/database"
	"github.com/chopdesk/chopdesk-api/internal/infrastructure/repository"
	"github.com/chopdesk/chopdesk-api/internal/presentation/http/handler"
	"github.com/chopdesk/chopdesk-api/internal/presentation/http/routes"
	"github.com/chopdesk/chopdesk-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if cfg.App.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	// Seed demo data when configured
	if err := database.SeedDemoTenant(db, log); err != nil {
		log.WithError(err).Warn("failed to seed demo tenant")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	revenueRepo := repository.NewRevenueRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	paymentRepo := repository.NewPlatformPaymentRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, tenantRepo, jwtManager, txManager)
	inventoryService := service.NewInventoryService(inventoryRepo, movementRepo, txManager)
	balanceService := service.NewBalanceService(sessionRepo, revenueRepo, expenseRepo, paymentRepo)
	sessionService := service.NewSessionService(sessionRepo, balanceService, txManager)
	revenueService := service.NewRevenueService(revenueRepo, sessionRepo, inventoryService, txManager)
	expenseService := service.NewExpenseService(expenseRepo, sessionRepo, inventoryService, txManager)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Session:  handler.NewSessionHandler(sessionService, balanceService),
		Ledger:   handler.NewLedgerHandler(revenueService, expenseService),
		Movement: handler.NewMovementHandler(inventoryService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Log:             log,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.WithFields(logrus.Fields{
		"service": cfg.App.Name,
		"env":     cfg.App.Env,
		"port":    port,
	}).Info("starting server")

	if err := router.Run(":" + port); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
