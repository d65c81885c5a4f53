package collector

import (
	"time"

	"github.com/QuantumMaverickElite/Quant/internal/model"
)

// Fetcher supplies ordered daily close bars for a symbol and date range.
// Any supplier producing the (date, close) contract is interchangeable.
type Fetcher interface {
	FetchDailyCloses(symbol string, start, end time.Time) ([]model.Bar, error)
	Name() string
}
