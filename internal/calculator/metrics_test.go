package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/QuantumMaverickElite/Quant/internal/model"
)

func makeRecords(nets, exposures []float64) []model.ReturnRecord {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]model.ReturnRecord, len(nets))
	equity := 1.0
	for i := range nets {
		equity *= 1 + nets[i]
		records[i] = model.ReturnRecord{
			Date:     base.AddDate(0, 0, i),
			Net:      nets[i],
			Exposure: exposures[i],
			Equity:   equity,
		}
	}
	return records
}

func TestSummarize(t *testing.T) {
	nets := []float64{0, 0.01, -0.01, 0.02}
	exposures := []float64{0, 1, 1, 0}
	sum := Summarize(makeRecords(nets, exposures))

	finalEquity := 1.01 * 0.99 * 1.02
	assert.InDelta(t, finalEquity, sum.FinalEquity, 1e-12)
	assert.InDelta(t, math.Pow(finalEquity, 252.0/4.0)-1, sum.CAGR, 1e-9)

	// Sample stddev of the nets, annualized.
	wantVol := math.Sqrt(0.0005/3.0) * math.Sqrt(252)
	assert.InDelta(t, wantVol, sum.AnnualVol, 1e-9)
	assert.InDelta(t, 0.005*252/wantVol, sum.Sharpe, 1e-9)

	// Equity dips from 1.01 to 0.9999, exactly -1%.
	assert.InDelta(t, -0.01, sum.MaxDrawdown, 1e-12)

	// Exposure changes on two of four days.
	assert.InDelta(t, 0.5, sum.Turnover, 1e-12)
	assert.Equal(t, 2, sum.Trades)

	// Two in-market days, one of them positive.
	assert.InDelta(t, 0.5, sum.WinRate, 1e-12)
}

func TestSummarizeDegenerate(t *testing.T) {
	nets := []float64{0, 0, 0, 0}
	exposures := []float64{0, 0, 0, 0}
	sum := Summarize(makeRecords(nets, exposures))

	assert.True(t, math.IsNaN(sum.Sharpe), "zero-variance series must leave Sharpe undefined")
	assert.True(t, math.IsNaN(sum.WinRate), "never-in-market run must leave WinRate undefined")
	assert.Zero(t, sum.AnnualVol)
	assert.Zero(t, sum.CAGR)
	assert.Zero(t, sum.MaxDrawdown)
	assert.Zero(t, sum.Turnover)
	assert.Zero(t, sum.Trades)
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil)
	assert.True(t, math.IsNaN(sum.Sharpe))
	assert.Zero(t, sum.FinalEquity)
}

func TestSummarizeBenchmark(t *testing.T) {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	bench := []float64{1.0, 1.02, 1.01, 1.05}
	records := make([]model.ReturnRecord, len(bench))
	for i, b := range bench {
		records[i] = model.ReturnRecord{Date: base.AddDate(0, 0, i), BenchmarkEquity: b}
	}

	sum := SummarizeBenchmark(records)
	assert.InDelta(t, 1.05, sum.FinalEquity, 1e-12)
	// Fixed exposure 1.0 never trades.
	assert.Zero(t, sum.Turnover)
	assert.Zero(t, sum.Trades)
	// Drawdown from 1.02 to 1.01.
	assert.InDelta(t, 1.01/1.02-1, sum.MaxDrawdown, 1e-12)
}

func TestMaxDrawdownBounds(t *testing.T) {
	cases := []struct {
		name     string
		equities []float64
		want     float64
	}{
		{"monotone rise", []float64{1, 1.1, 1.2, 1.3}, 0},
		{"halving", []float64{1, 2, 1}, -0.5},
		{"full wipeout shape", []float64{1, 0.2}, -0.8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := maxDrawdown(tc.equities)
			assert.InDelta(t, tc.want, got, 1e-12)
			assert.LessOrEqual(t, got, 0.0)
			assert.GreaterOrEqual(t, got, -1.0)
		})
	}
}
