package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/dragframe/internal/application/port"
	"github.com/bnema/dragframe/internal/cli"
	"github.com/bnema/dragframe/internal/cli/model"
	"github.com/bnema/dragframe/internal/cli/screen"
	"github.com/bnema/dragframe/internal/infrastructure/config"
	"github.com/bnema/dragframe/internal/logging"
	"github.com/bnema/dragframe/internal/ui/component"
	"github.com/bnema/dragframe/internal/ui/demo"
)

var (
	runBackend   string
	runEphemeral bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the draggable frame demo",
	Long: `Open a full-screen demo hosting the frames listed under [demo] in the config.

Drag a frame by pressing inside it and moving the pointer. A press that
does not travel past the drag threshold is delivered to the frame as a
click. Positions are saved on release and restored on the next run.

Keys:
  r        reset all frames to their initial position
  a        toggle edge anchoring
  ?        toggle help
  q, esc   quit

Editing the config file while the demo runs applies the new frame options.

Examples:
  dragframe run                     # use the backend from the config
  dragframe run --backend tcell     # drive the demo with tcell
  dragframe run --ephemeral         # do not touch the position database`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runBackend, "backend", "b", "", "terminal backend: tea, tcell (default from config)")
	runCmd.Flags().BoolVar(&runEphemeral, "ephemeral", false, "keep positions in memory for this run only")
}

func runDemo(_ *cobra.Command, _ []string) error {
	var err error
	app, err = cli.NewApp(cli.Options{
		ConfigFile:  configFile,
		Ephemeral:   runEphemeral,
		Interactive: true,
	})
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	app.BuildInfo = buildInfo

	backend := config.DemoBackend(runBackend)
	if backend == "" {
		backend = app.Config.Demo.Backend
	}
	if backend != config.DemoBackendTea && backend != config.DemoBackendTcell {
		return fmt.Errorf("unsupported backend %q (use: tea, tcell)", backend)
	}

	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runScene(ctx, app, backend)
}

func runScene(ctx context.Context, app *cli.App, backend config.DemoBackend) error {
	log := logging.FromContext(ctx).With().Str("backend", string(backend)).Logger()
	clock := port.SystemClock{}

	host := component.NewFrameHost()
	defer host.Close(ctx)

	scene, err := demo.NewScene(ctx, host, app.Positions(host), clock, cli.FrameSpecs(app.Config))
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	reloads := make(chan []demo.FrameSpec, 1)
	app.Manager.OnConfigChange(func(cfg *config.Config) {
		specs := cli.FrameSpecs(cfg)
		// Keep only the newest specs if the UI has not caught up.
		select {
		case <-reloads:
		default:
		}
		reloads <- specs
	})
	if err := app.Manager.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watcher disabled")
	}

	uiCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(uiCtx)

	var forward func([]demo.FrameSpec)
	switch backend {
	case config.DemoBackendTcell:
		s, err := screen.NewScreen()
		if err != nil {
			return err
		}
		forward = func(specs []demo.FrameSpec) {
			if err := screen.PostReload(s, specs); err != nil {
				log.Debug().Err(err).Msg("reload event dropped")
			}
		}
		g.Go(func() error {
			defer cancel()
			return screen.Run(gctx, s, scene, app.Theme, clock)
		})
	default:
		m := model.NewFramesModel(gctx, app.Theme, scene, clock)
		opts := append(model.ProgramOptions(), tea.WithContext(gctx))
		p := tea.NewProgram(m, opts...)
		forward = func(specs []demo.FrameSpec) {
			p.Send(model.ReloadMsg{Specs: specs})
		}
		g.Go(func() error {
			defer cancel()
			_, err := p.Run()
			if errors.Is(err, tea.ErrProgramKilled) && gctx.Err() != nil {
				return nil
			}
			return err
		})
	}

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case specs := <-reloads:
				log.Info().Int("frames", len(specs)).Msg("config changed, applying frame options")
				forward(specs)
			}
		}
	})

	log.Info().Int("frames", len(host.Frames())).Msg("demo started")
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("demo stopped")
	return nil
}
