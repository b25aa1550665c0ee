package main

import (
	"wallet-ledger/internal/config"
	"wallet-ledger/internal/database"
	"wallet-ledger/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	log := logger.New(cfg == nil || cfg.Server.PrettyLogs)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	if err := database.Migrate(cfg.Database.URL()); err != nil {
		log.Fatal().Err(err).Msg("Migration run failed")
	}

	log.Info().Str("database", cfg.Database.Name).Msg("Migrations applied")
}
