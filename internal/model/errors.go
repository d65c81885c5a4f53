package model

import "errors"

var (
	// ErrBadData indicates malformed price input: non-monotonic dates,
	// non-positive closes, mismatched series lengths, or too little history.
	ErrBadData = errors.New("bad price data")

	// ErrDegenerateSeries indicates a zero-variance return series, which
	// leaves the Sharpe ratio undefined.
	ErrDegenerateSeries = errors.New("degenerate return series")
)
