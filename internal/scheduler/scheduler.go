package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/QuantumMaverickElite/Quant/internal/backtest"
	"github.com/QuantumMaverickElite/Quant/internal/collector"
	"github.com/QuantumMaverickElite/Quant/internal/model"
	"github.com/QuantumMaverickElite/Quant/internal/notifier"
	"github.com/QuantumMaverickElite/Quant/internal/recorder"
)

// Scheduler re-runs the backtest on a cron schedule over a growing window,
// records each snapshot, and notifies when the target exposure for the next
// session changes. It executes nothing; it only reports the signal.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Params    model.StrategyParams
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Start     time.Time
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler anchored at the configured start date.
func NewScheduler(ctx context.Context, col *collector.Collector, params model.StrategyParams,
	start time.Time, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Params:    params,
		Notifier:  tn,
		Recorder:  rec,
		Start:     start,
		Ctx:       ctx,
	}
}

// Register adds the daily task on the given cron spec.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Run starts the cron loop.
func (s *Scheduler) Run() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron loop gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the daily task immediately (manual trigger / run-on-start).
func (s *Scheduler) RunNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	log.Info().Str("symbol", s.Collector.Symbol).Msg("running daily backtest")

	end := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	prices, err := s.Collector.Collect(s.Start, end)
	if err != nil {
		log.Error().Err(err).Msg("daily collect failed")
		return
	}

	res, err := backtest.Run(prices, s.Params)
	if err != nil {
		log.Error().Err(err).Msg("daily backtest failed")
		return
	}

	latest := res.Exposures[len(res.Exposures)-1]
	log.Info().
		Str("regime", latest.Regime.String()).
		Float64("target_exposure", latest.Weight).
		Float64("equity", res.Summary.FinalEquity).
		Msg("daily backtest complete")

	if err := s.Recorder.RecordRun(res); err != nil {
		log.Error().Err(err).Msg("record run failed")
	}
	if err := s.Recorder.RecordSignal(res.Symbol, latest); err != nil {
		log.Error().Err(err).Msg("record signal failed")
	}

	// Only ping the chat when tomorrow's position differs from today's.
	prev := res.Exposures[len(res.Exposures)-2]
	if latest.Weight != prev.Weight && s.Notifier.Enabled() {
		msg := notifier.FormatSignalAlert(res.Symbol, prev, latest)
		if err := s.Notifier.SendWithRetry(s.Ctx, msg, 3); err != nil {
			log.Error().Err(err).Msg("send signal alert failed")
		}
	}
}
