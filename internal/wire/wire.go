// Package wire provides dependency injection for the tabmagnet application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	cliadapter "github.com/example/tabmagnet/internal/adapters/cli"
	"github.com/example/tabmagnet/internal/adapters/memory"
	"github.com/example/tabmagnet/internal/adapters/sqlite"
	tmuxadapter "github.com/example/tabmagnet/internal/adapters/tmux"
	"github.com/example/tabmagnet/internal/app"
	"github.com/example/tabmagnet/internal/config"
	"github.com/example/tabmagnet/internal/db"
	"github.com/example/tabmagnet/internal/ports/primary"
	"github.com/example/tabmagnet/internal/ports/secondary"
	"github.com/example/tabmagnet/internal/tmux"
)

// Services groups the primary ports built over one host and database.
type Services struct {
	Arranger primary.ArrangerService
	Settings primary.SettingsService
	Activity primary.ActivityService
}

// Build assembles the services for a host and an open database.
func Build(cfg config.Config, host secondary.TabHost, database *sql.DB) *Services {
	settingsRepo := sqlite.NewSettingsRepository(database)
	stateRepo := sqlite.NewTabStateRepository(database)
	activityRepo := sqlite.NewActivityRepository(database)

	executor := app.NewEffectExecutor(host, activityRepo)
	settingsService := app.NewSettingsService(settingsRepo, cfg.Languages)

	return &Services{
		Arranger: app.NewArrangerService(host, stateRepo, settingsService, executor, activityRepo, app.ArrangerConfig{
			SettleDelay: cfg.SettleDelay(),
			NewTabURLs:  cfg.NewTabURLs,
		}),
		Settings: settingsService,
		Activity: app.NewActivityService(activityRepo),
	}
}

var (
	configPath string
	cfg        config.Config
	services   *Services
	installer  secondary.HookInstaller
	initErr    error
	once       sync.Once
)

// SetConfigPath selects the config file. It must be called before any
// service accessor.
func SetConfigPath(path string) {
	configPath = path
}

// ConfigPath returns the path passed to SetConfigPath, empty for the default.
func ConfigPath() string {
	return configPath
}

// Config returns the loaded configuration.
func Config() (config.Config, error) {
	once.Do(initServices)
	return cfg, initErr
}

// ArrangerService returns the singleton ArrangerService instance.
func ArrangerService() (primary.ArrangerService, error) {
	once.Do(initServices)
	if initErr != nil {
		return nil, initErr
	}
	return services.Arranger, nil
}

// SettingsService returns the singleton SettingsService instance.
func SettingsService() (primary.SettingsService, error) {
	once.Do(initServices)
	if initErr != nil {
		return nil, initErr
	}
	return services.Settings, nil
}

// ActivityService returns the singleton ActivityService instance.
func ActivityService() (primary.ActivityService, error) {
	once.Do(initServices)
	if initErr != nil {
		return nil, initErr
	}
	return services.Activity, nil
}

// HookInstaller returns the installer of the configured host.
func HookInstaller() (secondary.HookInstaller, error) {
	once.Do(initServices)
	if initErr != nil {
		return nil, initErr
	}
	if installer == nil {
		return nil, fmt.Errorf("host %q does not support hooks", cfg.Host)
	}
	return installer, nil
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once. Errors are kept rather than fatal so
// hook commands can fail open.
func initServices() {
	cfg, initErr = config.Load(configPath)
	if initErr != nil {
		return
	}

	var host secondary.TabHost
	switch cfg.Host {
	case config.HostMemory:
		host = memory.NewHost()
	default:
		gotmux, err := tmux.NewGotmuxAdapter()
		if err != nil {
			initErr = err
			return
		}
		tmuxHost := tmuxadapter.NewHost(tmux.NewClient(cfg.Tmux.Binary), gotmux)
		host = tmuxHost
		installer = tmuxHost
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		initErr = fmt.Errorf("failed to initialize database: %w", err)
		return
	}

	services = Build(cfg, host, database)
}

// SettingsAdapter returns a new SettingsAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func SettingsAdapter() (*cliadapter.SettingsAdapter, error) {
	return SettingsAdapterWithOutput(os.Stdout)
}

// SettingsAdapterWithOutput returns a new SettingsAdapter writing to the given output.
func SettingsAdapterWithOutput(out io.Writer) (*cliadapter.SettingsAdapter, error) {
	service, err := SettingsService()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewSettingsAdapter(service, out), nil
}

// TabsAdapterWithOutput returns a new TabsAdapter writing to the given output.
func TabsAdapterWithOutput(out io.Writer) (*cliadapter.TabsAdapter, error) {
	service, err := ArrangerService()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewTabsAdapter(service, out), nil
}

// ActivityAdapterWithOutput returns a new ActivityAdapter writing to the given output.
func ActivityAdapterWithOutput(out io.Writer) (*cliadapter.ActivityAdapter, error) {
	service, err := ActivityService()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewActivityAdapter(service, out), nil
}
