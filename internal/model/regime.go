package model

import "time"

// Regime identifies the rule-set that produced a day's exposure.
type Regime int

const (
	RegimeWarmup Regime = iota
	RegimeMomentum
	RegimeDownStreak
	RegimeUpStreak
	RegimeCrash
)

func (r Regime) String() string {
	switch r {
	case RegimeMomentum:
		return "MOMENTUM"
	case RegimeDownStreak:
		return "DOWN_STREAK"
	case RegimeUpStreak:
		return "UP_STREAK"
	case RegimeCrash:
		return "CRASH"
	default:
		return "WARMUP"
	}
}

// ExposurePoint is one day of engine output: the target weight signalled at
// that day's close (applied from the next session), plus the regime and
// counter diagnostics for that day.
type ExposurePoint struct {
	Date    time.Time
	Weight  float64
	Regime  Regime
	DownRun int
	UpRun   int
	// CrashLeft is the remaining crash-mode countdown after this day.
	CrashLeft int
}

// ExposureSeries is aligned 1:1 with the PriceSeries it was computed from.
type ExposureSeries []ExposurePoint

// Weights returns just the signal weights in order.
func (e ExposureSeries) Weights() []float64 {
	w := make([]float64, len(e))
	for i, p := range e {
		w[i] = p.Weight
	}
	return w
}
