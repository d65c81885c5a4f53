package model

import (
	"errors"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestNewPriceSeries(t *testing.T) {
	cases := []struct {
		name    string
		bars    []Bar
		wantErr bool
	}{
		{
			name: "valid",
			bars: []Bar{{day(0), 100}, {day(1), 101}, {day(4), 99}},
		},
		{
			name:    "too short",
			bars:    []Bar{{day(0), 100}},
			wantErr: true,
		},
		{
			name:    "zero close",
			bars:    []Bar{{day(0), 100}, {day(1), 0}},
			wantErr: true,
		},
		{
			name:    "negative close",
			bars:    []Bar{{day(0), -1}, {day(1), 100}},
			wantErr: true,
		},
		{
			name:    "duplicate date",
			bars:    []Bar{{day(0), 100}, {day(0), 101}},
			wantErr: true,
		},
		{
			name:    "out of order",
			bars:    []Bar{{day(1), 100}, {day(0), 101}},
			wantErr: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewPriceSeries("TEST", tc.bars)
			if tc.wantErr {
				if !errors.Is(err, ErrBadData) {
					t.Fatalf("expected ErrBadData, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Len() != len(tc.bars) {
				t.Errorf("Len = %d, want %d", s.Len(), len(tc.bars))
			}
		})
	}
}

func TestPriceSeriesAccessors(t *testing.T) {
	s, err := NewPriceSeries("SPY", []Bar{{day(0), 100}, {day(1), 102}, {day(2), 101}})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if !s.Start().Equal(day(0)) || !s.End().Equal(day(2)) {
		t.Errorf("date range = %s..%s", s.Start(), s.End())
	}
	closes := s.Closes()
	if len(closes) != 3 || closes[1] != 102 {
		t.Errorf("closes = %v", closes)
	}
}
