// finder is the interactive terminal form for cheapest fare searches.
//
// It reads the same environment as the API server. FARE_SOURCE=ryanair
// queries Ryanair directly; FARE_SOURCE=server asks a running API server
// at FARE_API_URL. Logs go to --log-file (or LOG_FILE) because the form
// owns the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/flight-search/cheapest-fly/internal/adapter/provider"
	"github.com/flight-search/cheapest-fly/internal/adapter/tui"
	"github.com/flight-search/cheapest-fly/internal/config"
	"github.com/flight-search/cheapest-fly/internal/infrastructure/logger"
	"github.com/flight-search/cheapest-fly/internal/infrastructure/retry"
	"github.com/flight-search/cheapest-fly/internal/infrastructure/timeutil"
	"github.com/flight-search/cheapest-fly/internal/usecase"
)

const (
	serviceName    = "cheapest-fly-finder"
	startupTimeout = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var prefill tui.Prefill
	var logFile string

	flagSet := pflag.NewFlagSet("finder", pflag.ContinueOnError)
	flagSet.StringVar(&prefill.From, "from", "", "prefill the departure airport")
	flagSet.StringVar(&prefill.To, "to", "", "prefill the destination airport")
	flagSet.StringVar(&prefill.Date, "date", "", "prefill the departure date (YYYY-MM-DD)")
	flagSet.StringVar(&logFile, "log-file", "", "append JSON log records to this file (default: $LOG_FILE)")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.Nop()
	if logFile == "" {
		logFile = cfg.Logging.File
	}
	if logFile != "" {
		fileLog, closer, err := logger.NewFile(logger.Config{
			Level:       cfg.Logging.Level,
			Format:      "json",
			ServiceName: serviceName,
		}, logFile)
		if err != nil {
			return err
		}
		defer closer.Close()
		log = fileLog
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	lookup, closeLookup, err := provider.NewLookup(ctx, cfg, log)
	cancel()
	if err != nil {
		return err
	}
	defer closeLookup()

	log.Info().Str("provider", lookup.Name()).Msg("Finder started")

	search := usecase.NewFareSearchUseCase(lookup, usecase.FareSearchConfig{
		LookupTimeout: cfg.Timeouts.FareLookup,
		Retry:         retry.Backoff(cfg.Retry.MaxAttempts, cfg.Retry.InitialDelay, cfg.Retry.MaxDelay),
		Logger:        log,
	})

	model := tui.NewModel(usecase.NewFormValidator(timeutil.NewRealClock(), cfg.Location()), prefill)
	program := tea.NewProgram(model, tea.WithAltScreen())

	dispatcher := usecase.NewDispatcher(search, usecase.DispatcherConfig{
		Deliver: tui.NewDeliverer(program),
		Logger:  log,
	})
	model.SetSubmitter(dispatcher)

	_, err = program.Run()
	dispatcher.Close()
	return err
}
