package main

import (
	"log/slog"
	"os"

	"github.com/tendant/simple-auth/pkg/config"
	"github.com/tendant/simple-auth/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed loading config", "err", err)
		os.Exit(-1)
	}

	if err := database.MigrateUp(cfg.DbConfig.URL()); err != nil {
		slog.Error("Failed applying migrations", "db", cfg.DbConfig.Database, "err", err)
		os.Exit(-1)
	}

	slog.Info("Migrations applied successfully", "db", cfg.DbConfig.Database)
}
