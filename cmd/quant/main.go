package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/QuantumMaverickElite/Quant/internal/collector"
	"github.com/QuantumMaverickElite/Quant/internal/config"
	"github.com/QuantumMaverickElite/Quant/internal/recorder"
)

const version = "v1.2.0"

var (
	flagConfig string
	flagDebug  bool
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	rootCmd := &cobra.Command{
		Use:     "quant",
		Short:   "Regime-switching backtester for daily stock data",
		Version: version,
		Long: `quant evaluates a momentum/streak/crash regime strategy against
historical daily closes and reports its risk/return profile versus buy-and-hold.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "log per-day regime diagnostics")

	rootCmd.AddCommand(newRunCmd(), newSweepCmd(), newWatchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads the YAML config, applies the global flags, and validates.
func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if flagDebug {
		cfg.Debug = true
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return cfg, nil
}

// newFetcher picks the price provider from config.
func newFetcher(cfg *config.Config) (collector.Fetcher, error) {
	switch cfg.DataSource.Provider {
	case "yahoo":
		return collector.NewYahooFetcher(cfg.Proxy), nil
	case "stooq":
		return collector.NewStooqFetcher(cfg.Proxy), nil
	case "csv":
		return collector.NewCSVFileFetcher(cfg.DataSource.CSVPath), nil
	case "mock":
		return &collector.MockFetcher{}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.DataSource.Provider)
	}
}

// newRecorder opens the SQLite recorder when configured, noop otherwise.
func newRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Output.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	rec, err := recorder.NewSQLiteRecorder(cfg.Output.SQLitePath)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return rec
}
