package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ccwx46/stock-data-ai/internal/calculator"
	"github.com/ccwx46/stock-data-ai/internal/collector"
	"github.com/ccwx46/stock-data-ai/internal/config"
	"github.com/ccwx46/stock-data-ai/internal/model"
)

// Options controls one pipeline run.
type Options struct {
	LookbackYears int
	Concurrency   int // number of tickers processed at once; 1 = sequential
}

// job is one (category, ticker) unit of work. Tickers appearing in more
// than one category are independent jobs.
type job struct {
	index    int // position in declaration order
	category string
	ticker   string
}

// outcome is either a result or a skip, never both.
type outcome struct {
	result *model.TickerResult
	skip   *model.Skip
}

// Run walks the portfolio in declaration order, fetches each ticker's
// daily history and folds it into a TickerResult. A ticker whose fetch
// fails, returns nothing, or violates the series contract is recorded as
// a skip; it never aborts the rest of the run. With Concurrency > 1
// tickers are processed by a bounded worker pool and reassembled into
// declaration order before the report is returned.
func Run(ctx context.Context, fetcher collector.Fetcher, portfolio []config.Category, opts Options) *model.PortfolioReport {
	var jobs []job
	for _, cat := range portfolio {
		for _, t := range cat.Tickers {
			jobs = append(jobs, job{index: len(jobs), category: cat.Name, ticker: t})
		}
	}

	outcomes := make([]outcome, len(jobs))

	workers := opts.Concurrency
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for _, j := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(j job) {
			defer wg.Done()
			defer func() { <-sem }()
			log.Printf("[INFO] processing %s (%d/%d)", j.ticker, j.index+1, len(jobs))
			outcomes[j.index] = process(ctx, fetcher, j, opts.LookbackYears)
		}(j)
	}
	wg.Wait()

	report := &model.PortfolioReport{GeneratedAt: time.Now()}
	for _, cat := range portfolio {
		report.Categories = append(report.Categories, cat.Name)
	}
	for _, o := range outcomes {
		if o.result != nil {
			report.Results = append(report.Results, *o.result)
		}
		if o.skip != nil {
			report.Skipped = append(report.Skipped, *o.skip)
			log.Printf("[WARN] skipping %s: %s", o.skip.Ticker, o.skip.Reason)
		}
	}
	return report
}

func process(ctx context.Context, fetcher collector.Fetcher, j job, lookbackYears int) outcome {
	skip := func(reason string) outcome {
		return outcome{skip: &model.Skip{Ticker: j.ticker, Category: j.category, Reason: reason}}
	}

	series, err := fetcher.FetchDailyHistory(ctx, j.ticker, lookbackYears)
	if err != nil {
		return skip(fmt.Sprintf("fetch failed: %v", err))
	}

	stats, err := calculator.ComputeStats(series)
	if err != nil {
		return skip(fmt.Sprintf("invalid series: %v", err))
	}
	if stats == nil {
		return skip("no data")
	}

	monthly, err := calculator.AggregateMonthly(series, calculator.Descending)
	if err != nil {
		return skip(fmt.Sprintf("invalid series: %v", err))
	}

	return outcome{result: &model.TickerResult{
		Ticker:   j.ticker,
		Category: j.category,
		Monthly:  monthly,
		Stats:    *stats,
	}}
}
