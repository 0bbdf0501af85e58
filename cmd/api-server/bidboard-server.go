package main

import (
	"log"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"bidboard/db"
	"bidboard/db/migrations"
	"bidboard/internal/auth"
	"bidboard/internal/config"
	"bidboard/internal/handlers"
	"bidboard/internal/logging"
	"bidboard/internal/ratelimit"
)

func main() {
	// A missing .env is fine in deployed environments.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	dbConn, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	defer dbConn.Close()

	if err := migrations.Run(dbConn.DB); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	limiter := ratelimit.New()
	limiter.StartSweep(5 * time.Minute)
	defer limiter.Stop()

	store := db.NewStorage(dbConn)
	sessions := auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL)
	h := handlers.NewHandler(store, sessions, limiter, logger)

	logger.Info("starting server", zap.String("address", cfg.ServerAddress))
	if err := http.ListenAndServe(cfg.ServerAddress, h.Routes()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
