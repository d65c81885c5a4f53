package recorder

import "github.com/QuantumMaverickElite/Quant/internal/model"

// Recorder persists backtest output for later inspection.
type Recorder interface {
	// RecordRun stores a run's parameters and summary metrics along with
	// its daily records.
	RecordRun(res *model.BacktestResult) error
	// RecordSignal stores a single day's target-exposure signal (watch mode).
	RecordSignal(symbol string, point model.ExposurePoint) error
	Close() error
}
