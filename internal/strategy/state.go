package strategy

import "github.com/QuantumMaverickElite/Quant/internal/model"

// regimeState is the per-run state machine: a long/flat latch, the two streak
// counters, and the crash-mode countdown. It only ever moves forward; a day
// is never revisited once stepped.
type regimeState struct {
	long      bool
	downRun   int
	upRun     int
	crashLeft int
}

// observe feeds one daily move into the streak counters. A flat close
// increments neither counter and resets neither.
func (s *regimeState) observe(prev, cur float64) {
	switch {
	case cur < prev:
		s.downRun++
		s.upRun = 0
	case cur > prev:
		s.upRun++
		s.downRun = 0
	}
}

// latch flips the position state when a streak trigger fires. Entry and exit
// are mutually exclusive within a single day.
func (s *regimeState) latch(downDays, upDays int) {
	if !s.long && s.downRun >= downDays {
		s.long = true
	} else if s.long && s.upRun >= upDays {
		s.long = false
	}
}

// step advances the machine by one trading day and returns the regime that
// governed the day and the signalled target weight.
//
// Priority order: crash mode, then the momentum override, then the normal
// streak latch. A crash trigger on an inactive machine starts the countdown
// at the crash window; a re-trigger while the countdown is still running
// extends it to the configured maximum instead of stacking.
func (s *regimeState) step(prev, cur float64, momentumUp, crashTrigger bool, p model.StrategyParams) (model.Regime, float64) {
	if crashTrigger {
		if s.crashLeft > 0 {
			s.crashLeft = p.CrashMaxHoldDays
		} else {
			s.crashLeft = p.CrashWindowDays
		}
	}

	if s.crashLeft > 0 {
		// Fast streak mode: buy after one down day, sell after one up day,
		// with the crash leverage instead of the down-regime leverage.
		s.observe(prev, cur)
		s.latch(1, 1)
		s.crashLeft--
		if s.long {
			return model.RegimeCrash, p.CrashLeverage
		}
		return model.RegimeCrash, 0
	}

	if momentumUp {
		// Fully long, no leverage. The latch stays set so that leaving the
		// momentum regime keeps the position until an up-streak exit.
		s.long = true
		s.downRun, s.upRun = 0, 0
		return model.RegimeMomentum, 1.0
	}

	s.observe(prev, cur)
	s.latch(p.DownDays, p.UpDays)
	if s.long {
		return model.RegimeDownStreak, p.DownLeverage
	}
	return model.RegimeUpStreak, 0
}
