package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"wallet-ledger/internal/config"
	"wallet-ledger/internal/database"
	"wallet-ledger/internal/events"
	"wallet-ledger/internal/handler"
	"wallet-ledger/internal/lock"
	"wallet-ledger/internal/logger"
	"wallet-ledger/internal/repository/memory"
	"wallet-ledger/internal/repository/postgres"
	"wallet-ledger/internal/service"
	"wallet-ledger/internal/worker"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "wallet-ledger/docs"
)

// @title Wallet Ledger API
// @version 1.0
// @description Wallet ledger and match economy for a real-money board game platform
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.basic BasicAuth
func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Load configuration from environment
	cfg, err := config.Load()
	log := logger.New(cfg == nil || cfg.Server.PrettyLogs)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	deps, closeStorage := openStorage(cfg, log)
	defer closeStorage()

	// Domain events go to NATS when a broker is configured
	deps.Publisher = events.NopPublisher{}
	if cfg.Nats.URL != "" {
		publisher, err := events.Connect(cfg.Nats.URL, cfg.Nats.Token)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to NATS")
		}
		deps.Publisher = publisher
		log.Info().Str("url", cfg.Nats.URL).Msg("Publishing events to NATS")
	}
	defer func() {
		if err := deps.Publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("Event publisher close error")
		}
	}()

	// Services
	sessionService := service.NewSessionService(deps, cfg.Economy, cfg.Admin)
	walletService := service.NewWalletService(deps, cfg.Economy, cfg.Policy)
	matchService := service.NewMatchService(deps, cfg.Economy, cfg.Policy, cfg.Matchmaking, service.BotOpponents{}, lock.NewKeyedLock())
	adminService := service.NewAdminService(deps)
	auditService := service.NewAuditService(deps, cfg.Policy)

	// Root context to be canceled on SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Worker comparing cached balances with the log
	reconcileWorker := worker.NewReconcileWorker(auditService, cfg.Worker.ReconcileInterval, log)
	reconcileWorker.Start(ctx)
	defer reconcileWorker.Stop()

	// http handler
	h := handler.NewHandler(handler.Services{
		Session: sessionService,
		Wallet:  walletService,
		Match:   matchService,
		Admin:   adminService,
	}, cfg.Economy, cfg.Admin, log)
	router := h.SetupRoutes()

	// http server configuration. Matchmaking holds a request for the whole wait.
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout + cfg.Matchmaking.Wait,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().
		Str("port", cfg.Server.Port).
		Str("storage", cfg.Storage.Driver).
		Msg("Server started")

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info().Msg("Shutdown signal received, starting graceful shutdown...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	} else {
		log.Info().Msg("HTTP server stopped gracefully")
	}

	log.Info().Msg("Shutdown complete")
}

// openStorage builds the stores for the configured driver. The returned func
// releases them.
func openStorage(cfg *config.Config, log zerolog.Logger) (service.Dependencies, func()) {
	deps := service.Dependencies{Logger: log}

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		dbPool, err := database.NewPool(dbCtx, cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}

		deps.Accounts = postgres.NewAccountRepository(dbPool)
		deps.Transactions = postgres.NewTransactionRepository(dbPool)
		deps.Matches = postgres.NewMatchRepository(dbPool)
		deps.DB = postgres.NewTransactionManager(dbPool)
		return deps, dbPool.Close

	default:
		log.Warn().Msg("Using in-memory storage, state is lost on restart")
		store := memory.NewStore()
		deps.Accounts = store.Accounts()
		deps.Transactions = store.Transactions()
		deps.Matches = store.Matches()
		deps.DB = store
		return deps, func() {}
	}
}
