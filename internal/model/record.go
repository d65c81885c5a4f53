package model

import "time"

// ReturnRecord is one simulated trading day. Exposure is the applied
// position for the day (the previous day's signal), not the signal itself.
type ReturnRecord struct {
	Date            time.Time
	Close           float64
	Exposure        float64
	Gross           float64
	Net             float64
	Equity          float64
	BenchmarkEquity float64
}

// MetricsSummary aggregates a return series into its risk/return profile.
// Sharpe is NaN when the return series has zero variance.
type MetricsSummary struct {
	CAGR        float64
	AnnualVol   float64
	Sharpe      float64
	MaxDrawdown float64
	Turnover    float64
	Trades      int
	WinRate     float64
	FinalEquity float64
}

// BacktestResult bundles everything one run produces.
type BacktestResult struct {
	Symbol    string
	Params    StrategyParams
	Exposures ExposureSeries
	Records   []ReturnRecord
	Summary   MetricsSummary
	Benchmark MetricsSummary
}
