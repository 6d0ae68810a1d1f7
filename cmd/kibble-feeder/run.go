package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/kibble-feeder/kibble-go/cmd/kibble-feeder/interactive"
	"github.com/kibble-feeder/kibble-go/pkg/config"
	"github.com/kibble-feeder/kibble-go/pkg/feeder"
	"github.com/kibble-feeder/kibble-go/pkg/hw"
	"github.com/kibble-feeder/kibble-go/pkg/journal"
	"github.com/kibble-feeder/kibble-go/pkg/metrics"
	"github.com/kibble-feeder/kibble-go/pkg/whitelist"
	"github.com/kibble-feeder/kibble-go/pkg/window"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type runOptions struct {
	configPath  string
	envFile     string
	interactive bool
	interval    int
	intervalSet bool
	logLevel    string
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the feeder controller",
		Long: `Run the clock monitor, tag dispenser and interval configurator until
interrupted. Configuration is read from --config, then overridden by KIBBLE_*
environment variables (optionally loaded from --env-file).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.intervalSet = cmd.Flags().Changed("interval")
			return runFeeder(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to YAML configuration file")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "Optional .env file with KIBBLE_* overrides")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Drive the simulated hardware from a console")
	cmd.Flags().IntVar(&opts.interval, "interval", 0, "Initial feeding interval in minutes (overrides config)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error, disabled (overrides config)")
	return cmd
}

// apply overrides cfg with the flags given on the command line and
// revalidates it.
func (o runOptions) apply(cfg *config.Config) error {
	if o.intervalSet {
		cfg.IntervalMinutes = o.interval
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg.Validate()
}

func runFeeder(ctx context.Context, opts runOptions) error {
	// Console logging until the configured level is known.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if loaded, err := config.LoadEnvFile(opts.envFile); err != nil {
		log.Warn().Err(err).Str("file", opts.envFile).Msg("Failed to load .env file")
	} else if loaded {
		log.Info().Str("file", opts.envFile).Msg("Loaded .env overrides")
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := opts.apply(cfg); err != nil {
		return err
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	hardware := interactive.NewHardware(time.Now())

	var console *interactive.Console
	var logOut io.Writer = os.Stderr
	if opts.interactive {
		console, err = interactive.New(hardware)
		if err != nil {
			return err
		}
		logOut = console.Stderr()
		hardware.Display.SetOutput(console.Stdout())
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: logOut, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	log.Logger = logger

	runID := uuid.New().String()

	journals := []journal.Logger{
		journal.NewZerologAdapter(logger.With().Str("component", "journal").Logger()),
	}
	if cfg.Journal.Path != "" {
		fl, err := journal.NewFileLogger(cfg.Journal.Path)
		if err != nil {
			logger.Error().Err(err).Str("path", cfg.Journal.Path).Msg("Failed to open journal file, continuing without it")
		} else {
			defer fl.Close()
			journals = append(journals, fl)
			logger.Info().Str("path", cfg.Journal.Path).Msg("Journaling to file")
		}
	}

	var recorder *metrics.Recorder
	if cfg.MetricsAddr != "" {
		recorder = metrics.NewRecorder()
		journals = append(journals, recorder)
	}
	events := journal.NewMultiLogger(journals...)

	wl := loadWhitelist(cfg, events, runID, logger)

	state, err := window.NewWithInterval(cfg.IntervalMinutes)
	if err != nil {
		return err
	}
	if recorder != nil {
		recorder.Track(state)
		go serveMetrics(ctx, cfg.MetricsAddr, recorder.Handler(), logger)
	}

	fcfg := cfg.FeederConfig()
	fcfg.State = state
	fcfg.Journal = events
	fcfg.Logger = &logger
	fcfg.RunID = runID

	periph := hardware.Peripherals()
	if !opts.interactive {
		periph.Display = hw.NewLogDisplay(logger)
	}

	ctrl, err := feeder.New(fcfg, periph, wl)
	if err != nil {
		return err
	}

	if console != nil {
		console.SetController(ctrl)
		go console.Run(ctx, stop)
	}

	return ctrl.Run(ctx)
}

// loadWhitelist loads the configured whitelist. A store that cannot be opened
// is logged and journaled, and the feeder runs with an empty whitelist.
func loadWhitelist(cfg *config.Config, events journal.Logger, runID string, logger zerolog.Logger) *whitelist.Whitelist {
	store, err := cfg.OpenWhitelistStore()
	if err != nil {
		logger.Error().Err(err).Msg("Whitelist unavailable, no tag will be accepted")
		events.Log(journal.Event{
			Timestamp: time.Now(),
			RunID:     runID,
			Source:    journal.SourceController,
			Category:  journal.CategoryError,
			Error: &journal.ErrorEventData{
				Message: err.Error(),
				Context: "whitelist load",
			},
		})
		return whitelist.Empty()
	}

	wl := whitelist.Load(store)
	logger.Info().Int("tags", wl.Len()).Msg("Whitelist loaded")
	events.Log(journal.Event{
		Timestamp: time.Now(),
		RunID:     runID,
		Source:    journal.SourceController,
		Category:  journal.CategoryLifecycle,
		Lifecycle: &journal.LifecycleEvent{
			State:  "whitelist_loaded",
			Detail: fmt.Sprintf("tags=%d", wl.Len()),
		},
	})
	return wl
}

func serveMetrics(ctx context.Context, addr string, handler http.Handler, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn().Err(err).Msg("Failed to shut down metrics server")
		}
	}()

	logger.Info().Str("addr", addr).Msg("Serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Str("addr", addr).Msg("Metrics server failed")
	}
}
