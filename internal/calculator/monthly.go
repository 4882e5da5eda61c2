package calculator

import (
	"github.com/ccwx46/stock-data-ai/internal/model"
)

// Order selects the presentation order of aggregated monthly bars.
type Order int

const (
	// Ascending is chronological order, oldest month first.
	Ascending Order = iota
	// Descending is most-recent-first. It is the exact reversal of the
	// ascending result, never a recomputation.
	Descending
)

// AggregateMonthly partitions a daily series into calendar-month groups
// and folds each group into one OHLC bar: open of the first day, close of
// the last day, max of highs, min of lows. Months with no trading days
// contribute no bar. An empty series yields an empty slice; a malformed
// series is rejected with an error wrapping model.ErrMalformedSeries.
//
// The result is never truncated. "Most recent N months" windows are a
// rendering concern.
func AggregateMonthly(series model.DailySeries, order Order) ([]model.MonthlyBar, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}

	bars := make([]model.MonthlyBar, 0, len(series)/20+1)
	for _, d := range series {
		y, m := d.Date.Year(), d.Date.Month()
		if n := len(bars); n > 0 && bars[n-1].Year == y && bars[n-1].Month == m {
			cur := &bars[n-1]
			if d.High > cur.High {
				cur.High = d.High
			}
			if d.Low < cur.Low {
				cur.Low = d.Low
			}
			cur.Close = d.Close
			continue
		}
		bars = append(bars, model.MonthlyBar{
			Year:  y,
			Month: m,
			Open:  d.Open,
			High:  d.High,
			Low:   d.Low,
			Close: d.Close,
		})
	}

	for i := range bars {
		bars[i].ChangePct = percentChange(bars[i].Open, bars[i].Close)
	}

	if order == Descending {
		for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
			bars[i], bars[j] = bars[j], bars[i]
		}
	}
	return bars, nil
}

// percentChange returns round2((to-from)/from*100), or nil when the
// denominator is zero and the change is undefined.
func percentChange(from, to float64) *float64 {
	if from == 0 {
		return nil
	}
	pct := Round2((to - from) / from * 100)
	return &pct
}
