package collector

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/QuantumMaverickElite/Quant/internal/model"
)

// CSVFileFetcher reads daily closes from a local "date,close" file, for
// offline and reproducible runs. The symbol argument is ignored; the file is
// the series.
type CSVFileFetcher struct {
	Path string
}

// NewCSVFileFetcher creates a fetcher for the given file.
func NewCSVFileFetcher(path string) *CSVFileFetcher {
	return &CSVFileFetcher{Path: path}
}

func (f *CSVFileFetcher) Name() string { return "csv:" + f.Path }

// FetchDailyCloses parses the file and keeps rows inside [start, end).
// A leading "date,close" header row is allowed.
func (f *CSVFileFetcher) FetchDailyCloses(_ string, start, end time.Time) ([]model.Bar, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 2

	var bars []model.Bar
	line := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(row[0]), "date") {
			continue
		}
		d, err := time.Parse("2006-01-02", strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad date %q", model.ErrBadData, line, row[0])
		}
		c, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad close %q", model.ErrBadData, line, row[1])
		}
		if !start.IsZero() && d.Before(start) {
			continue
		}
		if !end.IsZero() && !d.Before(end) {
			continue
		}
		bars = append(bars, model.Bar{Date: d, Close: c})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no rows in %s within range", model.ErrBadData, f.Path)
	}
	return bars, nil
}
