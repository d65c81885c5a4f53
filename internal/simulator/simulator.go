package simulator

import (
	"fmt"
	"math"

	"github.com/QuantumMaverickElite/Quant/internal/model"
)

// Simulate turns a signal series into daily net returns and equity curves.
//
// The signal computed at the close of day t-1 is the position held through
// day t, so the first day is always flat. The fee is turnover-based: feeRate
// per unit of applied-exposure change, charged on the day the change takes
// effect. A buy-and-hold benchmark equity (fixed exposure 1.0, no fees) is
// carried on every record.
func Simulate(prices *model.PriceSeries, exposures model.ExposureSeries, feeRate float64) ([]model.ReturnRecord, error) {
	if prices == nil || prices.Len() == 0 {
		return nil, fmt.Errorf("%w: empty price series", model.ErrBadData)
	}
	if prices.Len() != len(exposures) {
		return nil, fmt.Errorf("%w: %d prices vs %d exposures", model.ErrBadData, prices.Len(), len(exposures))
	}
	if feeRate < 0 {
		return nil, fmt.Errorf("%w: negative fee rate %.6f", model.ErrBadData, feeRate)
	}

	bars := prices.Bars
	records := make([]model.ReturnRecord, len(bars))
	records[0] = model.ReturnRecord{
		Date:            bars[0].Date,
		Close:           bars[0].Close,
		Equity:          1.0,
		BenchmarkEquity: 1.0,
	}

	prevApplied := 0.0
	equity := 1.0
	benchmark := 1.0
	for t := 1; t < len(bars); t++ {
		applied := exposures[t-1].Weight
		dayRet := bars[t].Close/bars[t-1].Close - 1

		gross := applied * dayRet
		fee := feeRate * math.Abs(applied-prevApplied)
		net := gross - fee

		equity *= 1 + net
		benchmark *= 1 + dayRet

		records[t] = model.ReturnRecord{
			Date:            bars[t].Date,
			Close:           bars[t].Close,
			Exposure:        applied,
			Gross:           gross,
			Net:             net,
			Equity:          equity,
			BenchmarkEquity: benchmark,
		}
		prevApplied = applied
	}
	return records, nil
}
