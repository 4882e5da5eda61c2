package collector

import (
	"context"
	"math"
	"time"

	"github.com/ccwx46/stock-data-ai/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series map[string]model.DailySeries
	Errs   map[string]error
	Base   float64 // base price for generated series when no canned data exists
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyHistory(_ context.Context, symbol string, years int) (model.DailySeries, error) {
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if s, ok := m.Series[symbol]; ok {
		return s, nil
	}
	base := m.Base
	if base == 0 {
		base = 100
	}
	return GenerateMockSeries(base, years*252), nil
}

// GenerateMockSeries produces a gently trending daily series of `count`
// bars ending today. The drift is multiplicative so prices stay positive
// at any count.
func GenerateMockSeries(basePrice float64, count int) model.DailySeries {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	series := make(model.DailySeries, count)
	for i := 0; i < count; i++ {
		p := basePrice * math.Pow(1.0003, float64(i-count/2))
		series[i] = model.DailyBar{
			Date:  today.AddDate(0, 0, -(count - i)),
			Open:  p * 0.999,
			High:  p * 1.005,
			Low:   p * 0.995,
			Close: p,
		}
	}
	return series
}
