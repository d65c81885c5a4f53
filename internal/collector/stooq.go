package collector

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/QuantumMaverickElite/Quant/internal/model"
)

// StooqFetcher pulls daily bars from the Stooq CSV endpoint. It needs no API
// key, which makes it a useful fallback when Yahoo rate-limits.
type StooqFetcher struct {
	Client    *http.Client
	SymbolMap map[string]string
}

// NewStooqFetcher creates a Stooq fetcher with optional proxy support.
func NewStooqFetcher(proxyURL string) *StooqFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &StooqFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		SymbolMap: map[string]string{
			"SPX500": "^spx",
			"SPX":    "^spx",
			"SP500":  "^spx",
		},
	}
}

func (f *StooqFetcher) Name() string { return "stooq" }

func (f *StooqFetcher) stooqSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	// Stooq names US equities like "spy.us".
	s := strings.ToLower(symbol)
	if !strings.Contains(s, ".") && !strings.HasPrefix(s, "^") {
		s += ".us"
	}
	return s
}

// FetchDailyCloses downloads the daily CSV for [start, end) and parses the
// Date and Close columns.
func (f *StooqFetcher) FetchDailyCloses(symbol string, start, end time.Time) ([]model.Bar, error) {
	u := fmt.Sprintf("https://stooq.com/q/d/l/?s=%s&d1=%s&d2=%s&i=d",
		url.QueryEscape(f.stooqSymbol(symbol)),
		start.Format("20060102"),
		end.AddDate(0, 0, -1).Format("20060102"))

	resp, err := f.Client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("stooq fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stooq: status %d", resp.StatusCode)
	}

	r := csv.NewReader(resp.Body)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("stooq read header: %w", err)
	}
	dateIdx, closeIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "date":
			dateIdx = i
		case "close":
			closeIdx = i
		}
	}
	if dateIdx < 0 || closeIdx < 0 {
		return nil, fmt.Errorf("stooq: unexpected header %v", header)
	}

	var bars []model.Bar
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("stooq read row: %w", err)
		}
		d, err := time.Parse("2006-01-02", row[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("stooq parse date %q: %w", row[dateIdx], err)
		}
		c, err := strconv.ParseFloat(row[closeIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("stooq parse close %q: %w", row[closeIdx], err)
		}
		bars = append(bars, model.Bar{Date: d, Close: c})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("stooq: no data returned for %s", symbol)
	}
	return bars, nil
}
