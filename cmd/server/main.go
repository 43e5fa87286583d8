package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/amirasaad/minibank/infra"
	"github.com/amirasaad/minibank/pkg/config"
	acctsvc "github.com/amirasaad/minibank/pkg/service/account"
	authsvc "github.com/amirasaad/minibank/pkg/service/auth"
	usersvc "github.com/amirasaad/minibank/pkg/service/user"
	"github.com/amirasaad/minibank/webapi"
)

// @title Minibank API
// @version 1.0.0
// @description Toy banking REST API
// @host localhost:3000
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.Default()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	uow := infra.NewGormUoW(db)
	userSvc := usersvc.New(uow, logger)
	authSvc := authsvc.New(uow, cfg.Jwt, logger)
	accountSvc := acctsvc.New(uow, logger)

	app := webapi.NewApp(cfg, userSvc, authSvc, accountSvc)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)
	return app.Listen(addr)
}
