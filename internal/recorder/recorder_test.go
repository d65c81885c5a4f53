package recorder

import (
	"database/sql"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuantumMaverickElite/Quant/internal/model"
)

func sampleResult() *model.BacktestResult {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []model.ReturnRecord{
		{Date: base, Close: 100, Equity: 1, BenchmarkEquity: 1},
		{Date: base.AddDate(0, 0, 1), Close: 101, Exposure: 1.3, Net: 0.013, Equity: 1.013, BenchmarkEquity: 1.01},
		{Date: base.AddDate(0, 0, 2), Close: 100, Exposure: 0, Net: -0.00065, Equity: 1.01234, BenchmarkEquity: 1.0},
	}
	return &model.BacktestResult{
		Symbol:  "SPY",
		Params:  model.StrategyParams{Lookback: 50, DownDays: 2, UpDays: 1, DownLeverage: 1.3},
		Records: records,
		Summary: model.MetricsSummary{
			CAGR:        0.1,
			AnnualVol:   0.2,
			Sharpe:      0.5,
			MaxDrawdown: -0.05,
			Turnover:    0.4,
			Trades:      2,
			WinRate:     0.5,
			FinalEquity: 1.01234,
		},
		Benchmark: model.MetricsSummary{CAGR: 0.0, Sharpe: math.NaN(), FinalEquity: 1.0},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.csv")
	res := sampleResult()
	require.NoError(t, WriteCSV(path, res.Records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1+len(res.Records))

	assert.Equal(t, []string{"date", "close", "exposure", "net_return", "equity", "benchmark_equity"}, rows[0])
	assert.Equal(t, "2020-01-02", rows[2][0])
	assert.Equal(t, "1.3", rows[2][2])
	assert.Equal(t, "1.013", rows[2][4])
}

func TestSQLiteRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quant.db")
	rec, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer rec.Close()

	res := sampleResult()
	require.NoError(t, rec.RecordRun(res))
	require.NoError(t, rec.RecordSignal("SPY", model.ExposurePoint{
		Date:   res.Records[2].Date,
		Weight: 1.3,
		Regime: model.RegimeDownStreak,
	}))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var runs, daily, signals int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&runs))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM daily_records").Scan(&daily))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM signals").Scan(&signals))
	assert.Equal(t, 1, runs)
	assert.Equal(t, len(res.Records), daily)
	assert.Equal(t, 1, signals)

	// NaN benchmark Sharpe is stored as NULL, not as a bogus number.
	var benchSharpe sql.NullFloat64
	require.NoError(t, db.QueryRow("SELECT bench_sharpe FROM runs LIMIT 1").Scan(&benchSharpe))
	assert.False(t, benchSharpe.Valid)

	var regime string
	require.NoError(t, db.QueryRow("SELECT regime FROM signals LIMIT 1").Scan(&regime))
	assert.Equal(t, "DOWN_STREAK", regime)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = &NoopRecorder{}
	assert.NoError(t, r.RecordRun(sampleResult()))
	assert.NoError(t, r.RecordSignal("SPY", model.ExposurePoint{}))
	assert.NoError(t, r.Close())
}
