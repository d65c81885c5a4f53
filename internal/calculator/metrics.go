package calculator

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/QuantumMaverickElite/Quant/internal/model"
)

// TradingDays is the annualization basis for daily return series.
const TradingDays = 252

// Summarize computes the strategy's summary statistics from a simulated
// return series. A zero-variance series leaves Sharpe as NaN; every other
// metric is still populated so exports can proceed.
func Summarize(records []model.ReturnRecord) model.MetricsSummary {
	nets := make([]float64, len(records))
	equities := make([]float64, len(records))
	exposures := make([]float64, len(records))
	for i, r := range records {
		nets[i] = r.Net
		equities[i] = r.Equity
		exposures[i] = r.Exposure
	}
	return summarize(nets, equities, exposures)
}

// SummarizeBenchmark computes the same statistics for the buy-and-hold curve
// carried on the records (fixed exposure 1.0, no fees, zero turnover).
func SummarizeBenchmark(records []model.ReturnRecord) model.MetricsSummary {
	nets := make([]float64, len(records))
	equities := make([]float64, len(records))
	exposures := make([]float64, len(records))
	for i, r := range records {
		equities[i] = r.BenchmarkEquity
		exposures[i] = 1.0
		if i > 0 {
			nets[i] = r.BenchmarkEquity/records[i-1].BenchmarkEquity - 1
		}
	}
	return summarize(nets, equities, exposures)
}

func summarize(nets, equities, exposures []float64) model.MetricsSummary {
	n := len(nets)
	if n == 0 {
		return model.MetricsSummary{Sharpe: math.NaN(), WinRate: math.NaN()}
	}

	finalEquity := equities[n-1]
	vol := stat.StdDev(nets, nil) * math.Sqrt(TradingDays)

	sharpe, err := sharpeRatio(nets, vol)
	if err != nil {
		sharpe = math.NaN()
	}

	return model.MetricsSummary{
		CAGR:        math.Pow(finalEquity, TradingDays/float64(n)) - 1,
		AnnualVol:   vol,
		Sharpe:      sharpe,
		MaxDrawdown: maxDrawdown(equities),
		Turnover:    stat.Mean(deltas(exposures), nil),
		Trades:      trades(exposures),
		WinRate:     winRate(nets, exposures),
		FinalEquity: finalEquity,
	}
}

// sharpeRatio annualizes mean/vol. It fails with ErrDegenerateSeries when
// the volatility is zero (for example an all-flat run), leaving the ratio
// undefined rather than infinite.
func sharpeRatio(nets []float64, annualVol float64) (float64, error) {
	if annualVol == 0 || math.IsNaN(annualVol) {
		return 0, model.ErrDegenerateSeries
	}
	return stat.Mean(nets, nil) * TradingDays / annualVol, nil
}

// maxDrawdown is the deepest peak-to-trough equity decline, in [-1, 0].
func maxDrawdown(equities []float64) float64 {
	peak := math.Inf(-1)
	worst := 0.0
	for _, e := range equities {
		if e > peak {
			peak = e
		}
		if dd := e/peak - 1; dd < worst {
			worst = dd
		}
	}
	return worst
}

// deltas returns |Δexposure| per day; day 0 has no prior applied exposure.
func deltas(exposures []float64) []float64 {
	d := make([]float64, len(exposures))
	for i := 1; i < len(exposures); i++ {
		d[i] = math.Abs(exposures[i] - exposures[i-1])
	}
	return d
}

// trades counts the days the applied exposure changed.
func trades(exposures []float64) int {
	count := 0
	for _, d := range deltas(exposures) {
		if d > 0 {
			count++
		}
	}
	return count
}

// winRate is the fraction of in-market days with a positive net return.
// NaN when the strategy was never in the market.
func winRate(nets, exposures []float64) float64 {
	active, wins := 0, 0
	for i, e := range exposures {
		if e == 0 {
			continue
		}
		active++
		if nets[i] > 0 {
			wins++
		}
	}
	if active == 0 {
		return math.NaN()
	}
	return float64(wins) / float64(active)
}
