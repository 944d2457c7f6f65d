// Command servilink is the ServiLink marketplace client.
package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/servilink/servilink-cli/internal/adapters/driven/backend"
	"github.com/servilink/servilink-cli/internal/adapters/driven/config/file"
	"github.com/servilink/servilink-cli/internal/adapters/driven/storage/sqlite"
	"github.com/servilink/servilink-cli/internal/adapters/driven/token"
	"github.com/servilink/servilink-cli/internal/adapters/driving/cli"
	"github.com/servilink/servilink-cli/internal/core/services"
	"github.com/servilink/servilink-cli/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	if err := logger.LevelFromEnv(os.LookupEnv); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", logger.EnvLevelKey, err)
	}

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore, os.LookupEnv)
	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading settings: %v\n", err)
		return err
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening session store: %v\n", err)
		return err
	}
	defer store.Close()

	sessionService := services.NewSessionService(store, token.NewInspector())
	if err := sessionService.Rehydrate(context.Background()); err != nil {
		// Rehydrate leaves the session anonymous on failure.
		logger.Warn("session: %v", err)
	}

	client, err := backend.NewClient(backend.Config{
		BaseURL:           settings.API.BaseURL,
		Timeout:           settings.API.Timeout,
		RequestsPerSecond: settings.API.RequestsPerSecond,
		Burst:             settings.API.Burst,
		Tokens:            backend.SessionTokenSource(sessionService.Token),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\nRun 'servilink settings set api.base_url <url>' to fix it.\n", err)
		return err
	}
	logger.Debug("api: %s", client.BaseURL())

	cli.SetServices(cli.Services{
		Session:    sessionService,
		Auth:       services.NewAuthService(client, sessionService),
		Search:     services.NewSearchService(client, client),
		Catalog:    services.NewCatalogService(client, client, sessionService),
		Jobs:       services.NewJobService(client, client),
		Profile:    services.NewProfileService(client, client, sessionService),
		Onboarding: services.NewOnboardingService(client, client, client, sessionService),
		Settings:   settingsService,
	})
	cli.SetTUIConfig(&cli.TUIConfig{
		Watch: func(ctx context.Context, onChange func()) (func() error, error) {
			w, err := sqlite.Watch(ctx, store.Path(), sqlite.DefaultDebounce, onChange)
			if err != nil {
				return nil, err
			}
			return w.Close, nil
		},
	})
	cli.SetVersion(version)

	return cli.Execute()
}
