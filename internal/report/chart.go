package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ccwx46/stock-data-ai/internal/model"
)

// renderCloseChart renders a PNG line chart of monthly closes. Input bars
// may be in either order; the chart is always drawn chronologically.
// Returns raw PNG bytes.
func renderCloseChart(ticker string, monthly []model.MonthlyBar) ([]byte, error) {
	if len(monthly) < 2 {
		return nil, fmt.Errorf("need at least 2 monthly bars, got %d", len(monthly))
	}

	bars := make([]model.MonthlyBar, len(monthly))
	copy(bars, monthly)
	if bars[0].Year > bars[len(bars)-1].Year ||
		(bars[0].Year == bars[len(bars)-1].Year && bars[0].Month > bars[len(bars)-1].Month) {
		for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
			bars[i], bars[j] = bars[j], bars[i]
		}
	}

	xValues := make([]time.Time, len(bars))
	yValues := make([]float64, len(bars))
	for i, b := range bars {
		xValues[i] = time.Date(b.Year, b.Month, 1, 0, 0, 0, 0, time.UTC)
		yValues[i] = b.Close
	}

	closeSeries := chart.TimeSeries{
		Name: ticker,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2980b9"),
			StrokeWidth: 2.0,
		},
		XValues: xValues,
		YValues: yValues,
	}

	graph := chart.Chart{
		Width:  860,
		Height: 220,
		Background: chart.Style{
			Padding: chart.Box{Top: 10, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{closeSeries},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
