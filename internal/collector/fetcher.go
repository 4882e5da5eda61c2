package collector

import (
	"context"

	"github.com/ccwx46/stock-data-ai/internal/model"
)

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	// FetchDailyHistory returns the daily series for the symbol over the
	// most recent `years` calendar years. An error or an empty series
	// both mean the ticker is unavailable; callers decide how to degrade.
	FetchDailyHistory(ctx context.Context, symbol string, years int) (model.DailySeries, error)
	Name() string
}
