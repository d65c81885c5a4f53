package strategy

import (
	"fmt"

	"github.com/QuantumMaverickElite/Quant/internal/model"
)

// Compute runs the regime exposure engine over a validated price series in a
// single left-to-right pass. The weight emitted for day t uses only closes at
// indices <= t; the simulator applies it from day t+1 (one-day execution lag).
//
// Per-day rules, highest priority first:
//  1. Crash mode: while the countdown is positive, a fast streak latch
//     (1 down day in, 1 up day out) at CrashLeverage.
//  2. Momentum override: Lookback-day return > 0 holds the position fully
//     long at 1.0 and resets the streak counters.
//  3. Down-regime streak latch: enter after DownDays consecutive down closes
//     at DownLeverage, exit flat after UpDays consecutive up closes.
//
// The momentum and crash tests only participate once their own lookback
// history exists; before that the streak latch alone governs the day.
func Compute(prices *model.PriceSeries, p model.StrategyParams) (model.ExposureSeries, error) {
	if prices == nil || prices.Len() == 0 {
		return nil, fmt.Errorf("%w: empty price series", model.ErrBadData)
	}

	closes := prices.Closes()
	out := make(model.ExposureSeries, len(closes))
	out[0] = model.ExposurePoint{Date: prices.Bars[0].Date, Regime: model.RegimeWarmup}

	var st regimeState
	for t := 1; t < len(closes); t++ {
		// The series constructor already rejects non-positive closes; this
		// guard keeps the divisions below safe if the invariant is violated.
		if closes[t] <= 0 || closes[t-1] <= 0 {
			return nil, fmt.Errorf("%w: non-positive close at index %d", model.ErrBadData, t)
		}

		momentumUp := false
		if t >= p.Lookback {
			momentumUp = closes[t]/closes[t-p.Lookback]-1 > 0
		}
		crashTrigger := false
		if t >= p.CrashWindowDays {
			crashTrigger = closes[t]/closes[t-p.CrashWindowDays]-1 <= -p.CrashWeekDrop
		}

		regime, weight := st.step(closes[t-1], closes[t], momentumUp, crashTrigger, p)
		out[t] = model.ExposurePoint{
			Date:      prices.Bars[t].Date,
			Weight:    weight,
			Regime:    regime,
			DownRun:   st.downRun,
			UpRun:     st.upRun,
			CrashLeft: st.crashLeft,
		}
	}
	return out, nil
}
