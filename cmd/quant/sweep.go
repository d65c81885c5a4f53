package main

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/QuantumMaverickElite/Quant/internal/backtest"
	"github.com/QuantumMaverickElite/Quant/internal/collector"
	"github.com/QuantumMaverickElite/Quant/internal/model"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run a parameter grid and rank results by Sharpe",
		RunE:  runSweep,
	}

	f := cmd.Flags()
	f.String("ticker", "", "symbol to backtest (overrides config)")
	f.String("start", "", "start date YYYY-MM-DD (overrides config)")
	f.String("end", "", "end date YYYY-MM-DD (overrides config)")
	f.String("lookbacks", "20,50,100", "comma-separated momentum lookbacks")
	f.String("down-days-grid", "1,2,3", "comma-separated down-streak entry triggers")
	f.String("up-days-grid", "1,2", "comma-separated up-streak exit triggers")
	f.String("down-leverages", "1.0,1.3", "comma-separated down-regime leverages")
	f.Int("top", 15, "number of ranked rows to print")
	return cmd
}

func runSweep(cmd *cobra.Command, _ []string) error {
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

	f := cmd.Flags()
	lookbacks, err := parseInts(mustString(f.GetString("lookbacks")))
	if err != nil {
		return fmt.Errorf("lookbacks: %w", err)
	}
	downDays, err := parseInts(mustString(f.GetString("down-days-grid")))
	if err != nil {
		return fmt.Errorf("down-days-grid: %w", err)
	}
	upDays, err := parseInts(mustString(f.GetString("up-days-grid")))
	if err != nil {
		return fmt.Errorf("up-days-grid: %w", err)
	}
	leverages, err := parseFloats(mustString(f.GetString("down-leverages")))
	if err != nil {
		return fmt.Errorf("down-leverages: %w", err)
	}

	for _, v := range append(append(append([]int{}, lookbacks...), downDays...), upDays...) {
		if v < 1 {
			return fmt.Errorf("grid values must be >= 1, got %d", v)
		}
	}
	for _, v := range leverages {
		if v <= 0 {
			return fmt.Errorf("leverages must be positive, got %.2f", v)
		}
	}

	var grid []model.StrategyParams
	for _, lb := range lookbacks {
		for _, dd := range downDays {
			for _, ud := range upDays {
				for _, lev := range leverages {
					p := cfg.Strategy
					p.Lookback = lb
					p.DownDays = dd
					p.UpDays = ud
					p.DownLeverage = lev
					grid = append(grid, p)
				}
			}
		}
	}
	log.Info().Int("runs", len(grid)).Msg("sweeping parameter grid")

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}
	start, end, err := cfg.Window()
	if err != nil {
		return err
	}
	prices, err := collector.NewCollector(fetcher, cfg.DataSource.Symbol).Collect(start, end)
	if err != nil {
		return err
	}

	results, err := backtest.Sweep(prices, grid)
	if err != nil {
		return err
	}

	// NaN Sharpe (all-flat runs) sorts to the bottom.
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].Summary.Sharpe, results[j].Summary.Sharpe
		if math.IsNaN(a) {
			return false
		}
		if math.IsNaN(b) {
			return true
		}
		return a > b
	})

	rec := newRecorder(cfg)
	defer rec.Close()
	for _, res := range results {
		if err := rec.RecordRun(res); err != nil {
			log.Error().Err(err).Msg("record run failed")
		}
	}

	top, _ := f.GetInt("top")
	if top > len(results) {
		top = len(results)
	}
	fmt.Printf("\n%-6s %-4s %-4s %-5s %10s %10s %10s %8s\n",
		"mom", "dn", "up", "lev", "sharpe", "cagr", "maxdd", "trades")
	for _, res := range results[:top] {
		p, s := res.Params, res.Summary
		fmt.Printf("%-6d %-4d %-4d %-5.2f %10s %9.2f%% %9.2f%% %8d\n",
			p.Lookback, p.DownDays, p.UpDays, p.DownLeverage,
			formatMetric(s.Sharpe, false), s.CAGR*100, s.MaxDrawdown*100, s.Trades)
	}
	fmt.Println()
	return nil
}

func mustString(v string, _ error) string { return v }

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
