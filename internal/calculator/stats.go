package calculator

import (
	"github.com/ccwx46/stock-data-ai/internal/model"
)

// ComputeStats derives whole-window statistics from a daily series:
// the last close, the high and low over the entire window, and the
// endpoint-to-endpoint total return (buy at the window's first open,
// hold to the last close — monthly changes are never compounded into
// this figure). All values are rounded to 2 decimal places.
//
// An empty series returns (nil, nil): the ticker is unavailable and no
// placeholder statistics are fabricated. A malformed series returns an
// error wrapping model.ErrMalformedSeries.
func ComputeStats(series model.DailySeries) (*model.TickerStats, error) {
	if len(series) == 0 {
		return nil, nil
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}

	high, low := series[0].High, series[0].Low
	for _, b := range series[1:] {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}

	firstOpen := series[0].Open
	lastClose := series[len(series)-1].Close
	return &model.TickerStats{
		LastClose:      Round2(lastClose),
		PeriodHigh:     Round2(high),
		PeriodLow:      Round2(low),
		TotalReturnPct: percentChange(firstOpen, lastClose),
	}, nil
}
