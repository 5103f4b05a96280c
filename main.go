package main

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"datacheck/adapters/postgres"
	"datacheck/internal"
	"datacheck/internal/config"
	"datacheck/ports"
	"datacheck/ui"
)

func main() {
	// .env is optional; environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	var store ports.EvaluationStore
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			cancel()
			log.Fatalf("failed to prepare database schema: %v", err)
		}
		cancel()
		store = postgres.NewEvaluationRepository(db)
		logger.Info("run persistence enabled")
	} else {
		logger.Info("DATABASE_URL not set, runs are not persisted")
	}

	app := ui.NewApp(cfg.Evaluate, store, logger)
	if err := app.Serve(cfg.Server.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
