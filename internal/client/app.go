// Package client assembles the application: configuration, transport,
// credential store, template library, services and the command router,
// exposed to main through a single Run entry point.
package client

import (
	"context"
	"fmt"

	"github.com/hackmd-tools/hackmd-cli/internal/adapter"
	"github.com/hackmd-tools/hackmd-cli/internal/cli"
	"github.com/hackmd-tools/hackmd-cli/internal/config"
	"github.com/hackmd-tools/hackmd-cli/internal/credential"
	"github.com/hackmd-tools/hackmd-cli/internal/logger"
	"github.com/hackmd-tools/hackmd-cli/internal/router"
	"github.com/hackmd-tools/hackmd-cli/internal/service"
	"github.com/hackmd-tools/hackmd-cli/internal/template"
)

// App is the assembled command-line application.
type App struct {
	cli *cli.CLI

	logger *logger.Logger
}

// NewApp wires the CLI around a dispatcher factory. Infrastructure is
// constructed lazily inside the factory so that global flags participate
// in configuration before anything touches the network or the filesystem.
func NewApp(log *logger.Logger) *App {
	return &App{
		cli:    cli.New(dispatcherFactory(log), log),
		logger: log,
	}
}

// Run executes one command invocation and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	return a.cli.Run(ctx, args)
}

func dispatcherFactory(log *logger.Logger) cli.DispatcherFactory {
	return func(overrides *config.StructuredConfig) (cli.Dispatcher, error) {
		cfg, err := config.GetClientConfig(overrides)
		if err != nil {
			return nil, fmt.Errorf("load configuration: %w", err)
		}

		api, err := adapter.NewHTTPAPIClient(cfg.API, cfg.Retry, log)
		if err != nil {
			return nil, fmt.Errorf("create api client: %w", err)
		}

		store, err := credential.NewFileStore(cfg.Credentials, log)
		if err != nil {
			return nil, fmt.Errorf("create credential store: %w", err)
		}

		templates, err := template.NewStore("", log)
		if err != nil {
			return nil, fmt.Errorf("create template store: %w", err)
		}

		svcs := service.NewServices(service.Deps{
			API:       api,
			Store:     store,
			Templates: templates,
			Config:    *cfg,
			Logger:    log,
		})

		r := router.New(log)
		router.RegisterRoutes(r, svcs)
		return r, nil
	}
}
