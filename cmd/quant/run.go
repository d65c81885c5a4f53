package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/QuantumMaverickElite/Quant/internal/backtest"
	"github.com/QuantumMaverickElite/Quant/internal/chart"
	"github.com/QuantumMaverickElite/Quant/internal/collector"
	"github.com/QuantumMaverickElite/Quant/internal/config"
	"github.com/QuantumMaverickElite/Quant/internal/model"
	"github.com/QuantumMaverickElite/Quant/internal/recorder"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single backtest",
		RunE:  runBacktest,
	}

	f := cmd.Flags()
	f.String("ticker", "", "symbol to backtest (overrides config)")
	f.String("start", "", "start date YYYY-MM-DD (overrides config)")
	f.String("end", "", "end date YYYY-MM-DD (overrides config)")
	f.Int("lookback", 0, "momentum lookback days")
	f.Int("down-days", 0, "down-streak entry trigger")
	f.Int("up-days", 0, "up-streak exit trigger")
	f.Float64("down-leverage", 0, "exposure while long in the down regime")
	f.Float64("crash-week-drop", 0, "crash trigger, e.g. 0.08 for -8% over the window")
	f.Int("crash-window-days", 0, "crash lookback window and base countdown")
	f.Int("crash-hold-days", 0, "maximum countdown a crash re-trigger extends to")
	f.Float64("crash-leverage", 0, "exposure while long in crash mode")
	f.Float64("fee-rate", -1, "fee per unit of exposure change")
	f.Bool("no-export", false, "skip CSV and chart output")
	return cmd
}

// applyStrategyFlags merges run/sweep flag overrides into the config.
func applyStrategyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if v, _ := f.GetString("ticker"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v, _ := f.GetString("start"); v != "" {
		cfg.Range.Start = v
	}
	if v, _ := f.GetString("end"); v != "" {
		cfg.Range.End = v
	}
	p := &cfg.Strategy
	intFlags := map[string]*int{
		"lookback":          &p.Lookback,
		"down-days":         &p.DownDays,
		"up-days":           &p.UpDays,
		"crash-window-days": &p.CrashWindowDays,
		"crash-hold-days":   &p.CrashMaxHoldDays,
	}
	for name, dst := range intFlags {
		if f.Changed(name) {
			v, err := f.GetInt(name)
			if err != nil {
				return err
			}
			*dst = v
		}
	}
	floatFlags := map[string]*float64{
		"down-leverage":   &p.DownLeverage,
		"crash-week-drop": &p.CrashWeekDrop,
		"crash-leverage":  &p.CrashLeverage,
		"fee-rate":        &p.FeeRate,
	}
	for name, dst := range floatFlags {
		if f.Changed(name) {
			v, err := f.GetFloat64(name)
			if err != nil {
				return err
			}
			*dst = v
		}
	}
	return nil
}

func runBacktest(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyStrategyFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	res, err := collectAndRun(cfg)
	if err != nil {
		return err
	}

	if cfg.Debug {
		logDiagnostics(res)
	}
	printSummary(res)

	rec := newRecorder(cfg)
	defer rec.Close()
	if err := rec.RecordRun(res); err != nil {
		log.Error().Err(err).Msg("record run failed")
	}

	if noExport, _ := cmd.Flags().GetBool("no-export"); noExport {
		return nil
	}
	return exportOutputs(cfg, res)
}

func collectAndRun(cfg *config.Config) (*model.BacktestResult, error) {
	fetcher, err := newFetcher(cfg)
	if err != nil {
		return nil, err
	}
	start, end, err := cfg.Window()
	if err != nil {
		return nil, err
	}
	prices, err := collector.NewCollector(fetcher, cfg.DataSource.Symbol).Collect(start, end)
	if err != nil {
		return nil, err
	}
	return backtest.Run(prices, cfg.Strategy)
}

func logDiagnostics(res *model.BacktestResult) {
	for _, p := range res.Exposures {
		log.Debug().
			Str("date", p.Date.Format("2006-01-02")).
			Str("regime", p.Regime.String()).
			Float64("weight", p.Weight).
			Int("down_run", p.DownRun).
			Int("up_run", p.UpRun).
			Int("crash_left", p.CrashLeft).
			Msg("exposure")
	}
}

func printSummary(res *model.BacktestResult) {
	first := res.Records[0].Date.Format("2006-01-02")
	last := res.Records[len(res.Records)-1].Date.Format("2006-01-02")
	fmt.Printf("\n%s | %s to %s | %d trading days\n\n", res.Symbol, first, last, len(res.Records))

	fmt.Printf("%-16s %12s %12s\n", "", "strategy", "buy&hold")
	rows := []struct {
		name      string
		strat, b  float64
		isPercent bool
	}{
		{"CAGR", res.Summary.CAGR, res.Benchmark.CAGR, true},
		{"Vol (ann.)", res.Summary.AnnualVol, res.Benchmark.AnnualVol, true},
		{"Sharpe", res.Summary.Sharpe, res.Benchmark.Sharpe, false},
		{"Max drawdown", res.Summary.MaxDrawdown, res.Benchmark.MaxDrawdown, true},
		{"Final equity", res.Summary.FinalEquity, res.Benchmark.FinalEquity, false},
	}
	for _, r := range rows {
		fmt.Printf("%-16s %12s %12s\n", r.name, formatMetric(r.strat, r.isPercent), formatMetric(r.b, r.isPercent))
	}
	fmt.Printf("%-16s %12d\n", "Trades", res.Summary.Trades)
	fmt.Printf("%-16s %12.4f\n", "Turnover", res.Summary.Turnover)
	if !math.IsNaN(res.Summary.WinRate) {
		fmt.Printf("%-16s %11.1f%%\n", "Win rate", res.Summary.WinRate*100)
	}
	fmt.Println()
}

func formatMetric(v float64, percent bool) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	if percent {
		return fmt.Sprintf("%+.2f%%", v*100)
	}
	return fmt.Sprintf("%.4f", v)
}

func exportOutputs(cfg *config.Config, res *model.BacktestResult) error {
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	p := res.Params
	tag := fmt.Sprintf("%s_mom%d_d%d_u%d_cr%dw_ch%d_lev%.2f",
		res.Symbol, p.Lookback, p.DownDays, p.UpDays,
		int(p.CrashWeekDrop*100), p.CrashWindowDays, p.DownLeverage)

	csvPath := filepath.Join(cfg.Output.Dir, tag+"_backtest.csv")
	if err := recorder.WriteCSV(csvPath, res.Records); err != nil {
		return err
	}
	log.Info().Str("path", csvPath).Msg("csv written")

	chartPath := filepath.Join(cfg.Output.Dir, tag+"_equity.html")
	if err := chart.WriteEquityCurve(chartPath, res.Symbol, res.Records); err != nil {
		return err
	}
	log.Info().Str("path", chartPath).Msg("equity chart written")
	return nil
}
