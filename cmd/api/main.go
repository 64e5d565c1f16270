package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"comfygen/internal/bootstrap"
	"comfygen/internal/http/handlers"
	"comfygen/internal/http/httpapi"
	"comfygen/internal/infra"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := bootstrap.NewComfyClient(cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: failed to configure comfy client")
	}

	ledger, err := bootstrap.NewLedger(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: failed to open generation ledger")
	}
	defer ledger.Close()

	app := handlers.NewApp(client, ledger.Repo, cfg.OutputDir, logger)
	server := infra.NewHTTPServer(cfg, httpapi.NewRouter(app))

	logger.Info().
		Str("addr", server.Addr()).
		Str("comfy_host", client.BaseURL()).
		Str("workflow", cfg.WorkflowPath).
		Str("ledger", ledger.Store).
		Msg("api: listening")
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("api: server stopped with error")
		return
	}
	logger.Info().Msg("api: stopped")
}
