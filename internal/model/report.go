package model

import (
	"fmt"
	"time"
)

// MonthlyBar is one calendar month's OHLC aggregate for one instrument.
// ChangePct is nil when the month's open is zero and the percent change
// is therefore undefined.
type MonthlyBar struct {
	Year      int
	Month     time.Month
	Open      float64
	High      float64
	Low       float64
	Close     float64
	ChangePct *float64
}

// MonthKey returns the bar's month label, e.g. "2024-07".
func (b MonthlyBar) MonthKey() string {
	return fmt.Sprintf("%04d-%02d", b.Year, int(b.Month))
}

// TickerStats holds whole-window statistics for one instrument.
// TotalReturnPct is nil when the window's first open is zero.
type TickerStats struct {
	LastClose      float64
	PeriodHigh     float64
	PeriodLow      float64
	TotalReturnPct *float64
}

// TickerResult pairs a ticker and its category with the computed monthly
// bars (most-recent-first) and whole-window statistics.
type TickerResult struct {
	Ticker   string
	Category string
	Monthly  []MonthlyBar
	Stats    TickerStats
}

// Skip records a ticker that produced no result and why. Skips are
// reported for operator visibility but never fail the run.
type Skip struct {
	Ticker   string
	Category string
	Reason   string
}

// PortfolioReport is the full output of one pipeline run: results in
// category declaration order (tickers in per-category order), plus the
// tickers that were skipped. Categories lists every declared category in
// order, including those whose tickers all failed, so renderers can keep
// the declared section structure.
type PortfolioReport struct {
	GeneratedAt time.Time
	Categories  []string
	Results     []TickerResult
	Skipped     []Skip
}
