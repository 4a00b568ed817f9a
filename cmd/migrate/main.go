package main

import (
	"context"
	"os"
	"time"

	"aipirat/database"
	"aipirat/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	lg := logger.Must(logger.Options{Level: os.Getenv("LOG_LEVEL"), Format: "console"})
	defer func() { _ = lg.Sync() }()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		lg.Fatal("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, databaseURL, lg)
	if err != nil {
		lg.Fatal("failed to connect", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		lg.Fatal("migration failed", zap.Error(err))
	}

	keys, err := db.Keys(ctx, "")
	if err != nil {
		lg.Fatal("failed to list stored keys", zap.Error(err))
	}
	visitors, err := db.Keys(ctx, "visitor:")
	if err != nil {
		lg.Fatal("failed to list visitor keys", zap.Error(err))
	}

	lg.Info("all migrations completed",
		zap.Int("stored_keys", len(keys)),
		zap.Int("visitor_keys", len(visitors)),
	)
}
