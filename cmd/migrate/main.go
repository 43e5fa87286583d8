package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/amirasaad/minibank/infra"
	"github.com/amirasaad/minibank/pkg/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.AutoMigrate(db); err != nil {
		return err
	}
	slog.Info("schema migrated")
	return nil
}
