package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/QuantumMaverickElite/Quant/internal/model"
)

// SQLiteRecorder persists runs, daily records, and watch-mode signals to a
// SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so readers (Grafana, sqlite3 shell) don't block recording.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at    INTEGER NOT NULL,
			symbol        TEXT NOT NULL,
			start_date    TEXT,
			end_date      TEXT,
			params        TEXT,
			cagr          REAL,
			annual_vol    REAL,
			sharpe        REAL,
			max_drawdown  REAL,
			turnover      REAL,
			trades        INTEGER,
			win_rate      REAL,
			final_equity  REAL,
			bench_cagr    REAL,
			bench_sharpe  REAL,
			bench_max_dd  REAL,
			bench_equity  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(created_at)`,

		`CREATE TABLE IF NOT EXISTS daily_records (
			run_id           INTEGER NOT NULL,
			date             TEXT NOT NULL,
			close            REAL,
			exposure         REAL,
			net_return       REAL,
			equity           REAL,
			benchmark_equity REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_run ON daily_records(run_id)`,

		`CREATE TABLE IF NOT EXISTS signals (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at INTEGER NOT NULL,
			symbol     TEXT NOT NULL,
			date       TEXT NOT NULL,
			weight     REAL,
			regime     TEXT,
			down_run   INTEGER,
			up_run     INTEGER,
			crash_left INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_ts ON signals(created_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullNaN maps NaN to NULL; SQLite has no NaN representation.
func nullNaN(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func (r *SQLiteRecorder) RecordRun(res *model.BacktestResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	params, err := json.Marshal(res.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}

	s, b := res.Summary, res.Benchmark
	row, err := r.db.Exec(`INSERT INTO runs
		(created_at, symbol, start_date, end_date, params,
		 cagr, annual_vol, sharpe, max_drawdown, turnover, trades, win_rate, final_equity,
		 bench_cagr, bench_sharpe, bench_max_dd, bench_equity)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), res.Symbol,
		res.Records[0].Date.Format("2006-01-02"),
		res.Records[len(res.Records)-1].Date.Format("2006-01-02"),
		string(params),
		s.CAGR, s.AnnualVol, nullNaN(s.Sharpe), s.MaxDrawdown, s.Turnover, s.Trades, nullNaN(s.WinRate), s.FinalEquity,
		b.CAGR, nullNaN(b.Sharpe), b.MaxDrawdown, b.FinalEquity,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := row.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO daily_records
		(run_id, date, close, exposure, net_return, equity, benchmark_equity)
		VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare daily insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range res.Records {
		if _, err := stmt.Exec(runID, rec.Date.Format("2006-01-02"),
			rec.Close, rec.Exposure, rec.Net, rec.Equity, rec.BenchmarkEquity); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert daily record: %w", err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordSignal(symbol string, point model.ExposurePoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO signals
		(created_at, symbol, date, weight, regime, down_run, up_run, crash_left)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), symbol, point.Date.Format("2006-01-02"),
		point.Weight, point.Regime.String(), point.DownRun, point.UpRun, point.CrashLeft,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
