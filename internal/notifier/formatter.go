package notifier

import (
	"fmt"
	"math"
	"strings"

	"github.com/QuantumMaverickElite/Quant/internal/model"
)

// FormatRunReport formats a backtest result into a Telegram message.
func FormatRunReport(res *model.BacktestResult) string {
	var b strings.Builder

	first := res.Records[0].Date.Format("2006-01-02")
	last := res.Records[len(res.Records)-1].Date.Format("2006-01-02")
	b.WriteString(fmt.Sprintf("<b>%s</b> | %s to %s\n\n", res.Symbol, first, last))

	s := res.Summary
	b.WriteString("Strategy:\n")
	b.WriteString(fmt.Sprintf("  CAGR: %+.2f%%\n", s.CAGR*100))
	b.WriteString(fmt.Sprintf("  Vol (ann.): %.2f%%\n", s.AnnualVol*100))
	b.WriteString(fmt.Sprintf("  Sharpe: %s\n", formatSharpe(s.Sharpe)))
	b.WriteString(fmt.Sprintf("  Max drawdown: %.2f%%\n", s.MaxDrawdown*100))
	b.WriteString(fmt.Sprintf("  Trades: %d | Turnover: %.4f\n", s.Trades, s.Turnover))
	b.WriteString(fmt.Sprintf("  Final equity: %.4f\n\n", s.FinalEquity))

	bm := res.Benchmark
	b.WriteString("Buy & hold:\n")
	b.WriteString(fmt.Sprintf("  CAGR: %+.2f%% | Sharpe: %s | Max DD: %.2f%%\n",
		bm.CAGR*100, formatSharpe(bm.Sharpe), bm.MaxDrawdown*100))

	return b.String()
}

// FormatSignalAlert formats a target-exposure change for the next session.
func FormatSignalAlert(symbol string, prev, cur model.ExposurePoint) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<b>Signal change: %s</b> | %s\n\n", symbol, cur.Date.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Regime: %s\n", cur.Regime))
	b.WriteString(fmt.Sprintf("Target exposure next session: %.2f (was %.2f)\n", cur.Weight, prev.Weight))
	if cur.CrashLeft > 0 {
		b.WriteString(fmt.Sprintf("Crash mode active, %d day(s) left\n", cur.CrashLeft))
	}
	return b.String()
}

func formatSharpe(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}
