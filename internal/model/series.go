package model

import (
	"fmt"
	"time"
)

// Bar is a single daily close observation.
type Bar struct {
	Date  time.Time
	Close float64
}

// PriceSeries holds an ordered daily close series for one symbol.
// It is validated on construction and never mutated afterwards.
type PriceSeries struct {
	Symbol string
	Bars   []Bar
}

// NewPriceSeries validates the bars and wraps them in a PriceSeries.
// Dates must be strictly increasing and every close must be positive;
// missing days are simply absent, never interpolated.
func NewPriceSeries(symbol string, bars []Bar) (*PriceSeries, error) {
	if len(bars) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 bars, got %d", ErrBadData, len(bars))
	}
	for i, b := range bars {
		if b.Close <= 0 {
			return nil, fmt.Errorf("%w: non-positive close %.4f at %s", ErrBadData, b.Close, b.Date.Format("2006-01-02"))
		}
		if i > 0 && !bars[i-1].Date.Before(b.Date) {
			return nil, fmt.Errorf("%w: dates not strictly increasing at %s", ErrBadData, b.Date.Format("2006-01-02"))
		}
	}
	return &PriceSeries{Symbol: symbol, Bars: bars}, nil
}

// Len returns the number of trading days in the series.
func (s *PriceSeries) Len() int { return len(s.Bars) }

// Closes returns the close prices in order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Start returns the first trading day.
func (s *PriceSeries) Start() time.Time { return s.Bars[0].Date }

// End returns the last trading day.
func (s *PriceSeries) End() time.Time { return s.Bars[len(s.Bars)-1].Date }
