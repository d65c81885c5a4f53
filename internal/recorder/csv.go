package recorder

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/QuantumMaverickElite/Quant/internal/model"
)

// WriteCSV exports a simulated run, one row per trading day.
func WriteCSV(path string, records []model.ReturnRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "close", "exposure", "net_return", "equity", "benchmark_equity"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Date.Format("2006-01-02"),
			strconv.FormatFloat(r.Close, 'f', -1, 64),
			strconv.FormatFloat(r.Exposure, 'f', -1, 64),
			strconv.FormatFloat(r.Net, 'f', -1, 64),
			strconv.FormatFloat(r.Equity, 'f', -1, 64),
			strconv.FormatFloat(r.BenchmarkEquity, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
