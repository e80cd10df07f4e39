// File: cmd/ossgate/app.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"ossgate/internal/config"
	"ossgate/internal/gateway"
	"ossgate/internal/logger"
	"ossgate/internal/metrics"
	"ossgate/internal/provider/factory"
	"ossgate/internal/service"
	"ossgate/internal/ui/prompt"
	"ossgate/pkg/formatter"
	"ossgate/pkg/storage"
	"sort"
	"strings"
)

// appContainer holds all the shared dependencies for the application
// This includes configuration, the gateway and its service, formatters, and the logger
type appContainer struct {
	Config           *config.Config
	ConfigManager    *config.ConfigManager
	ProviderFactory  *factory.Factory
	Gateway          *gateway.Gateway
	StorageService   *service.StorageService
	StorageFormatter *formatter.StorageFormatter
	Metrics          *metrics.Metrics
	Prompter         prompt.Prompter
	Logger           *slog.Logger
}

type appOptions struct {
	configPath string
	debug      bool
	// Config subcommands must run even when the file fails validation
	managerOnly bool
	stdin       io.Reader
	stderr      io.Writer
	stdout      io.Writer
}

// Creates and initializes a new application container
func newApp(opts appOptions) (*appContainer, error) {
	cfgManager, err := config.NewConfigManager(opts.configPath)
	if err != nil {
		return nil, err
	}

	app := &appContainer{
		ConfigManager:    cfgManager,
		StorageFormatter: formatter.NewStorageFormatter(),
		Prompter:         prompt.NewStandardPrompter(opts.stdin, opts.stdout),
	}

	var cfg *config.Config
	if !opts.managerOnly {
		cfg, err = cfgManager.LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	level, format := "info", logger.FormatText
	if cfg != nil {
		level, format = cfg.Log.Level, cfg.Log.Format
	}
	if opts.debug {
		level = "debug"
	}
	log, err := logger.New(level, format, opts.stderr)
	if err != nil {
		return nil, err
	}
	app.Logger = log

	if cfg == nil {
		return app, nil
	}

	app.Config = cfg
	app.Metrics = metrics.New()
	app.ProviderFactory = factory.NewFactory(log)
	app.Gateway = gateway.New(app.ProviderFactory, log,
		gateway.WithTimeouts(gateway.Timeouts{
			List:     cfg.Timeouts.List,
			Transfer: cfg.Timeouts.Transfer,
			Control:  cfg.Timeouts.Control,
		}),
		gateway.WithMetrics(app.Metrics),
	)
	app.StorageService = service.NewStorageService(app.Gateway, cfg, log)

	log.Debug("Application initialized", "config", cfgManager.Path(), "profiles", cfg.ProfileNames())
	return app, nil
}

// Resolves --profile and --bucket into a connection config. With no profile
// given, a config holding exactly one profile uses it.
func (a *appContainer) profileConfig(profile, bucket string) (storage.Config, error) {
	if profile == "" {
		names := a.StorageService.ProfileNames()
		switch len(names) {
		case 0:
			return storage.Config{}, fmt.Errorf("no profiles configured. Use 'ossgate config set profiles.<name>.provider <provider>'")
		case 1:
			profile = names[0]
		default:
			return storage.Config{}, fmt.Errorf("several profiles are configured (%s); select one with --profile", strings.Join(names, ", "))
		}
	}
	return a.StorageService.ProfileConfig(profile, bucket)
}

// Validates requested profile names, defaulting to every configured profile
func (a *appContainer) resolveProfiles(requested []string) ([]string, error) {
	configured := a.StorageService.ProfileNames()
	if len(requested) == 0 {
		return configured, nil
	}

	known := make(map[string]bool, len(configured))
	for _, name := range configured {
		known[name] = true
	}

	var selected, unknown []string
	seen := make(map[string]bool)
	for _, p := range requested {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true

		if known[p] {
			selected = append(selected, p)
		} else {
			unknown = append(unknown, p)
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown profiles requested: %v. Configured profiles are: %v", unknown, configured)
	}
	return selected, nil
}

type appKey struct{}

func withApp(ctx context.Context, app *appContainer) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

func appFromContext(ctx context.Context) (*appContainer, error) {
	app, ok := ctx.Value(appKey{}).(*appContainer)
	if !ok || app == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	return app, nil
}

// Turns a failed envelope into a command error
func resultError[T any](result storage.Result[T]) error {
	if result.Success {
		return nil
	}
	return errors.New(result.Error)
}
