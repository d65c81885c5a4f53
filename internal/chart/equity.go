package chart

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/QuantumMaverickElite/Quant/internal/model"
)

// WriteEquityCurve renders the strategy and buy-and-hold equity curves to a
// standalone HTML file.
func WriteEquityCurve(path, symbol string, records []model.ReturnRecord) error {
	dates := make([]string, len(records))
	strat := make([]opts.LineData, len(records))
	bench := make([]opts.LineData, len(records))
	for i, r := range records {
		dates[i] = r.Date.Format("2006-01-02")
		strat[i] = opts.LineData{Value: r.Equity}
		bench[i] = opts.LineData{Value: r.BenchmarkEquity}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Equity Curve - %s", symbol),
			Subtitle: "growth of 1.0, net of fees",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	line.SetXAxis(dates).
		AddSeries("Strategy", strat).
		AddSeries("Buy & Hold", bench)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	return line.Render(f)
}
