package simulator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuantumMaverickElite/Quant/internal/model"
)

func makeSeries(t *testing.T, closes []float64) *model.PriceSeries {
	t.Helper()
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{Date: base.AddDate(0, 0, i), Close: c}
	}
	s, err := model.NewPriceSeries("TEST", bars)
	require.NoError(t, err)
	return s
}

func makeExposures(n int, weights []float64) model.ExposureSeries {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	exp := make(model.ExposureSeries, n)
	for i := range exp {
		exp[i] = model.ExposurePoint{Date: base.AddDate(0, 0, i), Weight: weights[i]}
	}
	return exp
}

func TestSimulateLagAndFees(t *testing.T) {
	closes := []float64{100, 98, 96, 95, 97, 99}
	weights := []float64{0, 0, 1.3, 1.3, 0, 0}
	feeRate := 0.0005

	records, err := Simulate(makeSeries(t, closes), makeExposures(len(closes), weights), feeRate)
	require.NoError(t, err)
	require.Len(t, records, len(closes))

	// Day t holds the weight signalled at the close of day t-1.
	wantApplied := []float64{0, 0, 0, 1.3, 1.3, 0}
	for i, rec := range records {
		assert.Equal(t, wantApplied[i], rec.Exposure, "day %d applied exposure", i)
	}

	// First leveraged day: gross return plus the entry fee.
	gross3 := 1.3 * (95.0/96.0 - 1)
	assert.InDelta(t, gross3, records[3].Gross, 1e-12)
	assert.InDelta(t, gross3-feeRate*1.3, records[3].Net, 1e-12)

	// Holding day: no turnover, no fee.
	assert.InDelta(t, records[4].Gross, records[4].Net, 1e-12)

	// Exit day: flat position earns nothing but pays the exit fee.
	assert.InDelta(t, 0.0, records[5].Gross, 1e-12)
	assert.InDelta(t, -feeRate*1.3, records[5].Net, 1e-12)
}

func TestSimulateFirstDay(t *testing.T) {
	closes := []float64{100, 101}
	records, err := Simulate(makeSeries(t, closes), makeExposures(2, []float64{1.0, 1.0}), 0.001)
	require.NoError(t, err)

	first := records[0]
	assert.Zero(t, first.Exposure)
	assert.Zero(t, first.Net)
	assert.Equal(t, 1.0, first.Equity)
	assert.Equal(t, 1.0, first.BenchmarkEquity)
}

func TestSimulateEquityRoundTrip(t *testing.T) {
	closes := make([]float64, 40)
	weights := make([]float64, 40)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		closes[i] = closes[i-1] * (1 + 0.01*math.Sin(float64(i)))
		if i%3 == 0 {
			weights[i] = 1.3
		}
	}

	records, err := Simulate(makeSeries(t, closes), makeExposures(len(closes), weights), 0.0005)
	require.NoError(t, err)

	compound := 1.0
	for _, rec := range records {
		compound *= 1 + rec.Net
	}
	assert.InDelta(t, compound, records[len(records)-1].Equity, 1e-9)

	// Benchmark is the raw price path rebased to 1.0.
	last := len(closes) - 1
	assert.InDelta(t, closes[last]/closes[0], records[last].BenchmarkEquity, 1e-9)
}

func TestSimulateBadInput(t *testing.T) {
	series := makeSeries(t, []float64{100, 101, 102})

	_, err := Simulate(series, makeExposures(2, []float64{0, 0}), 0.0005)
	assert.ErrorIs(t, err, model.ErrBadData)

	_, err = Simulate(series, makeExposures(3, []float64{0, 0, 0}), -0.1)
	assert.ErrorIs(t, err, model.ErrBadData)

	_, err = Simulate(nil, nil, 0)
	assert.ErrorIs(t, err, model.ErrBadData)
}
