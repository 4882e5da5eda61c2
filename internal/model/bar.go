package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrMalformedSeries marks a daily series that violates the upstream data
// contract (unsorted or duplicate dates, non-positive prices, broken
// high/low envelope). It is distinct from unavailable data: an empty
// series is valid, a malformed one is not.
var ErrMalformedSeries = errors.New("malformed daily series")

// DailyBar is one calendar day of trading for one instrument.
// Date carries day granularity only (midnight UTC by convention).
type DailyBar struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// DailySeries is a chronologically ascending sequence of daily bars with
// unique dates. An empty series is a valid state meaning the ticker was
// unavailable.
type DailySeries []DailyBar

// Validate checks the series against the upstream contract. The returned
// error wraps ErrMalformedSeries so callers can tell contract violations
// apart from absent data.
func (s DailySeries) Validate() error {
	for i, b := range s {
		if !positiveFinite(b.Open) || !positiveFinite(b.High) || !positiveFinite(b.Low) || !positiveFinite(b.Close) {
			return fmt.Errorf("%w: bar %d (%s): prices must be positive finite", ErrMalformedSeries, i, b.Date.Format("2006-01-02"))
		}
		if b.Low > b.High {
			return fmt.Errorf("%w: bar %d (%s): low %.4f above high %.4f", ErrMalformedSeries, i, b.Date.Format("2006-01-02"), b.Low, b.High)
		}
		if b.Open < b.Low || b.Open > b.High || b.Close < b.Low || b.Close > b.High {
			return fmt.Errorf("%w: bar %d (%s): open/close outside low-high range", ErrMalformedSeries, i, b.Date.Format("2006-01-02"))
		}
		if i > 0 && !s[i-1].Date.Before(b.Date) {
			return fmt.Errorf("%w: bar %d (%s): dates must be strictly ascending", ErrMalformedSeries, i, b.Date.Format("2006-01-02"))
		}
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
