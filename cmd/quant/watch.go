package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/QuantumMaverickElite/Quant/internal/collector"
	"github.com/QuantumMaverickElite/Quant/internal/notifier"
	"github.com/QuantumMaverickElite/Quant/internal/scheduler"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the backtest on a cron schedule and report signal changes",
		RunE:  runWatch,
	}
	cmd.Flags().Bool("run-now", false, "execute one backtest immediately on start")
	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}
	log.Info().Str("source", fetcher.Name()).Str("symbol", cfg.DataSource.Symbol).Msg("watch mode starting")

	col := collector.NewCollector(fetcher, cfg.DataSource.Symbol)
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	if !tn.Enabled() {
		log.Warn().Msg("telegram not configured, signal alerts disabled")
	}

	rec := newRecorder(cfg)
	defer rec.Close()

	start, _, err := cfg.Window()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, cfg.Strategy, start, tn, rec)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		return err
	}
	sched.Run()
	defer sched.Stop()

	if runNow, _ := cmd.Flags().GetBool("run-now"); runNow {
		go sched.RunNow()
	}

	log.Info().Str("cron", cfg.Schedule.DailyCron).Msg("watch mode running, ctrl+c to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	return nil
}
