package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccwx46/stock-data-ai/internal/collector"
	"github.com/ccwx46/stock-data-ai/internal/config"
	"github.com/ccwx46/stock-data-ai/internal/model"
)

func testSeries(base float64) model.DailySeries {
	return model.DailySeries{
		{Date: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), Open: base, High: base * 1.1, Low: base * 0.9, Close: base * 1.05},
		{Date: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), Open: base * 1.05, High: base * 1.2, Low: base, Close: base * 1.15},
	}
}

func testPortfolio() []config.Category {
	return []config.Category{
		{Name: "ETF", Tickers: []string{"AAA", "BBB"}},
		{Name: "Stocks", Tickers: []string{"CCC", "DDD"}},
	}
}

func TestRun_SkipIsolation(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Series: map[string]model.DailySeries{
			"AAA": testSeries(100),
			"CCC": testSeries(50),
			"DDD": {}, // ticker with no data
		},
		Errs: map[string]error{
			"BBB": errors.New("rate limited"),
		},
	}

	report := Run(context.Background(), fetcher, testPortfolio(), Options{LookbackYears: 10, Concurrency: 1})
	require.NotNil(t, report)
	assert.Equal(t, []string{"ETF", "Stocks"}, report.Categories)

	// BBB and DDD failed; AAA and CCC survive in declared order.
	require.Len(t, report.Results, 2)
	assert.Equal(t, "AAA", report.Results[0].Ticker)
	assert.Equal(t, "ETF", report.Results[0].Category)
	assert.Equal(t, "CCC", report.Results[1].Ticker)
	assert.Equal(t, "Stocks", report.Results[1].Category)

	require.Len(t, report.Skipped, 2)
	assert.Equal(t, "BBB", report.Skipped[0].Ticker)
	assert.Contains(t, report.Skipped[0].Reason, "fetch failed")
	assert.Equal(t, "DDD", report.Skipped[1].Ticker)
	assert.Equal(t, "no data", report.Skipped[1].Reason)
}

func TestRun_MalformedSeriesSkippedDistinctly(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Series: map[string]model.DailySeries{
			"BAD": {
				{Date: time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC), Open: 10, High: 11, Low: 9, Close: 10},
				{Date: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), Open: 10, High: 11, Low: 9, Close: 10},
			},
		},
	}
	portfolio := []config.Category{{Name: "X", Tickers: []string{"BAD"}}}

	report := Run(context.Background(), fetcher, portfolio, Options{LookbackYears: 10, Concurrency: 1})
	require.Empty(t, report.Results)
	require.Len(t, report.Skipped, 1)
	assert.Contains(t, report.Skipped[0].Reason, "invalid series")
}

func TestRun_ResultContent(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Series: map[string]model.DailySeries{"AAA": testSeries(100)},
	}
	portfolio := []config.Category{{Name: "ETF", Tickers: []string{"AAA"}}}

	report := Run(context.Background(), fetcher, portfolio, Options{LookbackYears: 10, Concurrency: 1})
	require.Len(t, report.Results, 1)

	res := report.Results[0]
	require.Len(t, res.Monthly, 2)
	// Monthly bars are stored most-recent-first.
	assert.Equal(t, "2024-02", res.Monthly[0].MonthKey())
	assert.Equal(t, "2024-01", res.Monthly[1].MonthKey())
	assert.Equal(t, 115.0, res.Stats.LastClose)
	assert.Equal(t, 120.0, res.Stats.PeriodHigh)
	assert.Equal(t, 90.0, res.Stats.PeriodLow)
	require.NotNil(t, res.Stats.TotalReturnPct)
	assert.Equal(t, 15.0, *res.Stats.TotalReturnPct)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestRun_ConcurrentMatchesSequentialOrder(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Series: map[string]model.DailySeries{
			"AAA": testSeries(100),
			"BBB": testSeries(80),
			"CCC": testSeries(50),
			"DDD": testSeries(20),
		},
	}

	seq := Run(context.Background(), fetcher, testPortfolio(), Options{LookbackYears: 10, Concurrency: 1})
	par := Run(context.Background(), fetcher, testPortfolio(), Options{LookbackYears: 10, Concurrency: 4})

	require.Len(t, par.Results, len(seq.Results))
	for i := range seq.Results {
		assert.Equal(t, seq.Results[i].Ticker, par.Results[i].Ticker)
		assert.Equal(t, seq.Results[i].Category, par.Results[i].Category)
		assert.Equal(t, seq.Results[i].Stats, par.Results[i].Stats)
	}
}

func TestRun_DuplicateTickerAcrossCategories(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Series: map[string]model.DailySeries{"AAA": testSeries(100)},
	}
	portfolio := []config.Category{
		{Name: "ETF", Tickers: []string{"AAA"}},
		{Name: "Stocks", Tickers: []string{"AAA"}},
	}

	report := Run(context.Background(), fetcher, portfolio, Options{LookbackYears: 10, Concurrency: 1})
	require.Len(t, report.Results, 2)
	assert.Equal(t, "ETF", report.Results[0].Category)
	assert.Equal(t, "Stocks", report.Results[1].Category)
}
