package backtest

import (
	"sync"

	"github.com/QuantumMaverickElite/Quant/internal/calculator"
	"github.com/QuantumMaverickElite/Quant/internal/model"
	"github.com/QuantumMaverickElite/Quant/internal/simulator"
	"github.com/QuantumMaverickElite/Quant/internal/strategy"
)

// Run executes the full chain for one parameter set: exposure engine,
// return simulation, then summary metrics for the strategy and the
// buy-and-hold benchmark.
func Run(prices *model.PriceSeries, p model.StrategyParams) (*model.BacktestResult, error) {
	exposures, err := strategy.Compute(prices, p)
	if err != nil {
		return nil, err
	}
	records, err := simulator.Simulate(prices, exposures, p.FeeRate)
	if err != nil {
		return nil, err
	}
	return &model.BacktestResult{
		Symbol:    prices.Symbol,
		Params:    p,
		Exposures: exposures,
		Records:   records,
		Summary:   calculator.Summarize(records),
		Benchmark: calculator.SummarizeBenchmark(records),
	}, nil
}

// Sweep runs every parameter set against the same price series. Runs share
// no state, so they fan out concurrently; results come back in input order.
func Sweep(prices *model.PriceSeries, paramSets []model.StrategyParams) ([]*model.BacktestResult, error) {
	results := make([]*model.BacktestResult, len(paramSets))
	errs := make([]error, len(paramSets))

	var wg sync.WaitGroup
	for i, p := range paramSets {
		wg.Add(1)
		go func(i int, p model.StrategyParams) {
			defer wg.Done()
			results[i], errs[i] = Run(prices, p)
		}(i, p)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
