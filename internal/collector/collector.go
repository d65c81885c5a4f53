package collector

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/QuantumMaverickElite/Quant/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars []model.Bar
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyCloses(_ string, _, _ time.Time) ([]model.Bar, error) {
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateMockBars(100, 300), nil
}

// GenerateMockBars builds a deterministic wavy series of daily bars ending
// today, weekends included for simplicity.
func GenerateMockBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + 0.1*math.Sin(float64(i)/17) + 0.0005*float64(i))
		bars[i] = model.Bar{
			Date:  time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -(count - i)),
			Close: p,
		}
	}
	return bars
}

// Collector fetches a symbol's history and validates it into a PriceSeries.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol}
}

// Collect fetches daily closes for [start, end) and returns the validated
// series. Malformed data from the provider surfaces as ErrBadData.
func (c *Collector) Collect(start, end time.Time) (*model.PriceSeries, error) {
	bars, err := c.Fetcher.FetchDailyCloses(c.Symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch daily closes: %w", err)
	}
	series, err := model.NewPriceSeries(c.Symbol, bars)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("source", c.Fetcher.Name()).
		Str("symbol", c.Symbol).
		Int("days", series.Len()).
		Time("first", series.Start()).
		Time("last", series.End()).
		Msg("price series collected")
	return series, nil
}
