package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/sysoverlay/internal/cli"
	"github.com/agbru/sysoverlay/internal/config"
	apperrors "github.com/agbru/sysoverlay/internal/errors"
	"github.com/agbru/sysoverlay/internal/logging"
	"github.com/agbru/sysoverlay/internal/server"
	"github.com/agbru/sysoverlay/internal/sysmon"
	"github.com/agbru/sysoverlay/internal/tui"
	"github.com/agbru/sysoverlay/internal/ui"
)

// Application represents the sysoverlay application instance.
type Application struct {
	Config    config.AppConfig
	Sampler   cli.PrimingSampler
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithSampler sets a custom sampler for the application.
func WithSampler(s cli.PrimingSampler) AppOption {
	return func(a *Application) { a.Sampler = s }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "sysoverlay"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Sampler == nil {
		app.Sampler = sysmon.NewHostSampler(sysmon.Options{
			SensorPath:     cfg.SensorPath,
			SensorFallback: cfg.SensorFallback,
		})
	}
	return app, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	// The overlay owns the terminal; only the one-shot mode may log to stderr.
	var console io.Writer
	if a.Config.Once {
		console = a.ErrWriter
	}
	logger, closeLog, err := logging.Open(a.Config.LogFile, a.Config.LogLevel, console)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}
	defer func() { _ = closeLog() }()

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.Once {
		err = cli.RunOnce(ctx, a.Sampler, a.Config.Interval, out, a.ErrWriter, logger)
	} else {
		err = a.runOverlay(ctx, logger)
	}

	if err != nil {
		if !apperrors.IsContextError(err) {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		}
		return apperrors.ExitCodeFor(err)
	}
	return apperrors.ExitSuccess
}

// runOverlay runs the overlay window and, when configured, the metrics
// server alongside it. Closing the window stops the server.
func (a *Application) runOverlay(ctx context.Context, logger logging.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	overlayCtx, stopServer := context.WithCancel(gctx)
	defer stopServer()

	var observer tui.Observer
	if a.Config.MetricsAddr != "" {
		metrics := server.NewMetrics()
		observer = metrics
		srv := server.NewServer(a.Config.MetricsAddr, metrics, logger)
		g.Go(func() error {
			return srv.Run(overlayCtx)
		})
	}

	g.Go(func() error {
		defer stopServer()
		logger.Info("overlay started",
			logging.Duration("interval", a.Config.Interval),
			logging.Bool("on_top", a.Config.AlwaysOnTop))
		_, err := tui.Run(overlayCtx, a.Sampler, tui.Options{
			Interval:    a.Config.Interval,
			AlwaysOnTop: a.Config.AlwaysOnTop,
			Position:    tui.DefaultPosition,
			Observer:    observer,
			Logger:      logger,
		})
		logger.Info("overlay stopped")
		return err
	})

	return g.Wait()
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
