// Package cli wires the dragframe commands: configuration, logging, the
// position store and the frame demo.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/bnema/dragframe/internal/application/port"
	"github.com/bnema/dragframe/internal/application/usecase"
	"github.com/bnema/dragframe/internal/cli/styles"
	"github.com/bnema/dragframe/internal/domain/build"
	"github.com/bnema/dragframe/internal/domain/entity"
	"github.com/bnema/dragframe/internal/domain/repository"
	"github.com/bnema/dragframe/internal/infrastructure/config"
	"github.com/bnema/dragframe/internal/infrastructure/persistence/memory"
	"github.com/bnema/dragframe/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/dragframe/internal/logging"
	"github.com/bnema/dragframe/internal/ui/demo"
)

// Options control how the app is initialized.
type Options struct {
	// ConfigFile overrides the XDG config location.
	ConfigFile string
	// Ephemeral keeps positions in memory for this run only.
	Ephemeral bool
	// Interactive disables stderr logging; the terminal belongs to the UI.
	Interactive bool
}

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info
	Store     repository.KeyValueStore

	db         port.DatabaseProvider
	ctx        context.Context
	logCleanup func()
}

// NewApp loads the configuration and creates the logger and position store.
func NewApp(opts Options) (*App, error) {
	mgr, err := newManager(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	cfg := mgr.Get()

	logger, logCleanup, logErr := logging.NewWithFile(
		logging.Config{
			Level:      logging.ParseLevel(cfg.Logging.Level),
			Format:     cfg.Logging.Format,
			TimeFormat: "15:04:05",
		},
		logging.FileConfig{
			Enabled:       cfg.Logging.EnableFileLog,
			LogDir:        cfg.Logging.LogDir,
			MaxSizeMB:     cfg.Logging.MaxSizeMB,
			MaxBackups:    cfg.Logging.MaxBackups,
			WriteToStderr: !opts.Interactive,
		},
	)
	ctx := logging.WithContext(context.Background(), logger)
	if logErr != nil {
		logger.Warn().Err(logErr).Str("log_dir", cfg.Logging.LogDir).Msg("file logging disabled")
	}

	app := &App{
		Config:     cfg,
		Manager:    mgr,
		Theme:      styles.NewTheme(),
		ctx:        ctx,
		logCleanup: logCleanup,
	}

	if opts.Ephemeral || cfg.Storage.Backend == config.StorageBackendMemory {
		app.Store = memory.NewKeyValueStore()
		logger.Debug().Msg("using in-memory position store")
	} else {
		app.db = sqlite.NewLazyDB(cfg.Storage.Path)
		app.Store = sqlite.NewKeyValueStore(app.db)
		logger.Debug().Str("db_path", cfg.Storage.Path).Msg("using sqlite position store")
	}

	return app, nil
}

func newManager(path string) (*config.Manager, error) {
	if path = explicitConfigFile(path); path != "" {
		return config.NewManagerForFile(path)
	}
	return config.NewManager()
}

func explicitConfigFile(override string) string {
	if override != "" {
		return override
	}
	return os.Getenv("DRAGFRAME_CONFIG")
}

// ConfigPath resolves the config file location: override, then
// $DRAGFRAME_CONFIG, then the XDG config directory.
func ConfigPath(override string) (string, error) {
	if path := explicitConfigFile(override); path != "" {
		return path, nil
	}
	return config.GetConfigFile()
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logCleanup != nil {
		a.logCleanup()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Positions returns the position store use case measuring against viewport.
func (a *App) Positions(viewport port.Viewport) *usecase.FramePositionsUseCase {
	return usecase.NewFramePositionsUseCase(a.Store, viewport, a.Config.Storage.KeyPrefix)
}

// FrameSpecs converts the configured demo frames to scene specs.
func FrameSpecs(cfg *config.Config) []demo.FrameSpec {
	specs := make([]demo.FrameSpec, 0, len(cfg.Demo.Frames))
	for _, f := range cfg.Demo.Frames {
		specs = append(specs, demo.FrameSpec{
			Options: f.FrameOptions(cfg.Frame),
			Title:   f.Title,
			Body:    f.Body,
			Size:    f.Size(),
		})
	}
	return specs
}

// noViewport is used by commands that only read or delete stored records.
type noViewport struct{}

func (noViewport) ViewportSize() entity.Size { return entity.Size{} }

// StoredPositions returns a use case for listing and forgetting records
// outside of a running demo.
func (a *App) StoredPositions() *usecase.FramePositionsUseCase {
	return a.Positions(noViewport{})
}

// String describes the store for diagnostics.
func (a *App) String() string {
	if a.db != nil {
		return fmt.Sprintf("sqlite:%s", a.db.Path())
	}
	return "memory"
}
