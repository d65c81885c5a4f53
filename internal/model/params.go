package model

// StrategyParams configures the regime exposure engine and simulator.
// It is passed by value so parameter sweeps can run side by side without
// interference. Tags are consumed by the config loader (creasty/defaults
// for zero-value fill, go-playground/validator for eager rejection).
type StrategyParams struct {
	// Lookback is the momentum window in trading days.
	Lookback int `yaml:"lookback" default:"50" validate:"gte=1"`
	// DownDays is the consecutive-down-day count that opens a long position
	// when momentum is non-positive.
	DownDays int `yaml:"down_days" default:"2" validate:"gte=1"`
	// UpDays is the consecutive-up-day count that closes the position.
	UpDays int `yaml:"up_days" default:"1" validate:"gte=1"`
	// DownLeverage is the exposure held while long in the down regime.
	DownLeverage float64 `yaml:"down_leverage" default:"1.3" validate:"gt=0"`
	// CrashWeekDrop triggers crash mode when the CrashWindowDays return is
	// at or below -CrashWeekDrop.
	CrashWeekDrop float64 `yaml:"crash_week_drop" default:"0.08" validate:"gt=0,lt=1"`
	// CrashWindowDays is both the crash lookback window and the countdown a
	// fresh trigger starts.
	CrashWindowDays int `yaml:"crash_window_days" default:"5" validate:"gte=1"`
	// CrashMaxHoldDays is the countdown a re-trigger extends to while crash
	// mode is already active.
	CrashMaxHoldDays int `yaml:"crash_max_hold_days" default:"10" validate:"gte=1"`
	// CrashLeverage is the exposure held while long in crash mode.
	CrashLeverage float64 `yaml:"crash_leverage" default:"1.0" validate:"gt=0"`
	// FeeRate is charged per unit of applied-exposure change.
	FeeRate float64 `yaml:"fee_rate" default:"0.0005" validate:"gte=0"`
}
