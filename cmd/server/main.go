package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/repository"
	"github.com/TmanScript/umoja-swap-collection/internal/infrastructure/config"
	"github.com/TmanScript/umoja-swap-collection/internal/infrastructure/persistence"
	"github.com/TmanScript/umoja-swap-collection/internal/interface/handler"
	interfaceRepo "github.com/TmanScript/umoja-swap-collection/internal/interface/repository"
	"github.com/TmanScript/umoja-swap-collection/internal/usecase"
	"github.com/TmanScript/umoja-swap-collection/pkg/logger"
	"github.com/TmanScript/umoja-swap-collection/pkg/metrics"
)

const sessionTTL = 2 * time.Hour

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Umoja Swap & Collection Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection (audit trail)
	log.Info("Connecting to MongoDB")
	mongoClient, mongoDB, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up PostgreSQL connection (ledger + admin accounts)
	log.Info("Connecting to PostgreSQL")
	gormDB, err := persistence.NewPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	m := metrics.NewMetrics("umoja")

	// Set up repositories
	swapLedger := interfaceRepo.NewGormSwapLedgerRepository(gormDB)
	collectionLedger := interfaceRepo.NewGormCollectionLedgerRepository(gormDB)
	adminRepo := interfaceRepo.NewGormAdminRepository(gormDB)
	auditRepo := interfaceRepo.NewMongoAuditRepository(mongoDB)

	var inventory repository.InventoryRepository
	if cfg.HasPortalToken() {
		log.Info("Using live portal inventory gateway", "base_url", cfg.PortalBaseURL)
		inventory = interfaceRepo.NewPortalInventoryRepository(cfg.PortalBaseURL, cfg.PortalToken, log, m)
	} else {
		log.Warn("PORTAL_TOKEN not set, using mock inventory dataset")
		inventory = interfaceRepo.NewMockInventoryRepository(cfg.MockLatency, log)
	}

	// Set up usecases and sessions
	auth := usecase.NewAuthUsecase(adminRepo, log, cfg.JWTSecret, cfg.JWTExpiry)
	factory := &handler.WorkflowFactory{
		Inventory:        inventory,
		SwapLedger:       swapLedger,
		CollectionLedger: collectionLedger,
		Audit:            auditRepo,
		Logger:           log,
		Metrics:          m,
	}
	sessions := handler.NewSessionRegistry(factory, sessionTTL)

	router := handler.NewRouter(handler.Handlers{
		Auth:       handler.NewAuthHandler(auth, sessions, log),
		Swap:       handler.NewSwapHandler(factory, sessions),
		Collection: handler.NewCollectionHandler(factory, sessions),
		History:    handler.NewHistoryHandler(swapLedger, collectionLedger, auditRepo),
		Stats:      handler.NewStatsHandler(collectionLedger),
	}, auth, cfg.AllowedOrigins, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Umoja Swap & Collection Service stopped")
}
