package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/loaderhub/internal/adapters/driven/auth"
	"github.com/custodia-labs/loaderhub/internal/adapters/driven/config/env"
	"github.com/custodia-labs/loaderhub/internal/adapters/driven/config/file"
	"github.com/custodia-labs/loaderhub/internal/adapters/driving/cli"
	"github.com/custodia-labs/loaderhub/internal/core/ports/driving"
	"github.com/custodia-labs/loaderhub/internal/core/services"
	"github.com/custodia-labs/loaderhub/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envCfg, err := env.Load(ctx)
	if err != nil {
		return err
	}
	logger.SetVerbose(envCfg.Verbose)

	store, err := file.NewSettingsStore(envCfg.ConfigDir)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		NewLoader: func(token string) driving.LoaderService {
			return services.NewLoaderService(auth.NewTokenProvider(token))
		},
		Settings: services.NewSettingsService(store).WithOverlay(envCfg.Apply),
	})

	return cli.Execute(ctx)
}
