package report

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"log"
	"os"
	"time"

	"github.com/ccwx46/stock-data-ai/internal/model"
)

// Renderer turns a PortfolioReport into the output artifacts. It holds
// the presentation knobs the core deliberately ignores: the most-recent-N
// truncation window and the display timezone.
type Renderer struct {
	MonthsDisplayed int
	Location        *time.Location
}

// NewRenderer creates a renderer. A nil location falls back to UTC.
func NewRenderer(monthsDisplayed int, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{MonthsDisplayed: monthsDisplayed, Location: loc}
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Monthly Portfolio Report</title>
<style>
    body { font-family: "Segoe UI", sans-serif; padding: 20px; background-color: #f4f4f9; color: #333; }
    h1 { text-align: center; color: #2c3e50; }
    .category-title { background-color: #2c3e50; color: white; padding: 10px; border-radius: 5px; margin-top: 40px; }
    .stock-card { background: white; padding: 20px; margin-bottom: 20px; border-radius: 8px; box-shadow: 0 2px 5px rgba(0,0,0,0.1); }
    h3 { border-bottom: 2px solid #eee; padding-bottom: 5px; color: #2980b9; }
    table { width: 100%; border-collapse: collapse; font-size: 13px; margin-top: 10px; }
    th, td { border: 1px solid #ddd; padding: 8px; text-align: center; }
    th { background-color: #ecf0f1; }
    .stats-row { display: flex; gap: 20px; margin-bottom: 10px; font-weight: bold; color: #555; }
    .skipped { color: #999; font-size: 13px; margin-top: 30px; }
    img.chart { max-width: 100%; }
</style>
</head>
<body>
    <h1>Core Assets Monthly Report</h1>
    <p style="text-align:center">Generated: {{.GeneratedAt}}</p>
{{range .Categories}}
    <h2 class="category-title">{{.Name}}</h2>
{{range .Tickers}}
    <div class="stock-card">
        <h3>{{.Ticker}}</h3>
        <div class="stats-row">
            <span>Current: {{.LastClose}}</span>
            <span>High: {{.PeriodHigh}}</span>
            <span>Low: {{.PeriodLow}}</span>
            <span>Total Return: {{.TotalReturn}}</span>
        </div>
{{if .ChartSrc}}        <img class="chart" src="{{.ChartSrc}}" alt="{{.Ticker}} monthly closes">
{{end}}        <table>
            <tr><th>Month</th><th>Open</th><th>High</th><th>Low</th><th>Close</th><th>Change(%)</th></tr>
{{range .Rows}}            <tr><td>{{.Month}}</td><td>{{.Open}}</td><td>{{.High}}</td><td>{{.Low}}</td><td>{{.Close}}</td><td>{{.Change}}</td></tr>
{{end}}        </table>
    </div>
{{end}}
{{end}}
{{if .Skipped}}
    <div class="skipped">
        <p>Skipped tickers:</p>
        <ul>
{{range .Skipped}}            <li>{{.Ticker}} ({{.Category}}): {{.Reason}}</li>
{{end}}        </ul>
    </div>
{{end}}
</body>
</html>
`

var reportTmpl = template.Must(template.New("report").Parse(htmlTemplate))

type htmlRow struct {
	Month  string
	Open   string
	High   string
	Low    string
	Close  string
	Change string
}

type htmlTicker struct {
	Ticker      string
	LastClose   string
	PeriodHigh  string
	PeriodLow   string
	TotalReturn string
	ChartSrc    template.URL
	Rows        []htmlRow
}

type htmlCategory struct {
	Name    string
	Tickers []htmlTicker
}

type htmlData struct {
	GeneratedAt string
	Categories  []htmlCategory
	Skipped     []model.Skip
}

// RenderHTML writes the grouped-by-category report document.
func (r *Renderer) RenderHTML(report *model.PortfolioReport, w io.Writer) error {
	data := htmlData{
		GeneratedAt: report.GeneratedAt.In(r.Location).Format("2006-01-02 15:04:05 MST"),
		Skipped:     report.Skipped,
	}

	// Section order follows the declared categories; one whose tickers all
	// failed still gets its header. Reports built without the declaration
	// fall back to the order the results carry.
	order := report.Categories
	if len(order) == 0 {
		for _, res := range report.Results {
			if len(order) == 0 || order[len(order)-1] != res.Category {
				order = append(order, res.Category)
			}
		}
	}
	byCategory := make(map[string][]htmlTicker, len(order))

	for _, res := range report.Results {
		t := htmlTicker{
			Ticker:      res.Ticker,
			LastClose:   fmtPrice(res.Stats.LastClose),
			PeriodHigh:  fmtPrice(res.Stats.PeriodHigh),
			PeriodLow:   fmtPrice(res.Stats.PeriodLow),
			TotalReturn: fmtPct(res.Stats.TotalReturnPct),
		}

		monthly := truncate(res.Monthly, r.MonthsDisplayed)
		for _, b := range monthly {
			t.Rows = append(t.Rows, htmlRow{
				Month:  b.MonthKey(),
				Open:   fmtPrice(b.Open),
				High:   fmtPrice(b.High),
				Low:    fmtPrice(b.Low),
				Close:  fmtPrice(b.Close),
				Change: fmtChange(b.ChangePct),
			})
		}

		if png, err := renderCloseChart(res.Ticker, monthly); err == nil {
			t.ChartSrc = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
		} else {
			log.Printf("[WARN] chart for %s not rendered: %v", res.Ticker, err)
		}

		byCategory[res.Category] = append(byCategory[res.Category], t)
	}

	for _, name := range order {
		data.Categories = append(data.Categories, htmlCategory{Name: name, Tickers: byCategory[name]})
	}

	return reportTmpl.Execute(w, data)
}

// WriteHTML renders the report to a file. A write failure here is fatal
// for the run; the caller decides the exit path.
func (r *Renderer) WriteHTML(report *model.PortfolioReport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html output: %w", err)
	}
	defer f.Close()
	if err := r.RenderHTML(report, f); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// truncate keeps the most recent n bars. Bars are stored
// most-recent-first, so this is a prefix cut.
func truncate(bars []model.MonthlyBar, n int) []model.MonthlyBar {
	if n > 0 && len(bars) > n {
		return bars[:n]
	}
	return bars
}

func fmtPrice(v float64) string { return fmt.Sprintf("%.2f", v) }

// fmtChange renders an undefined percent change as a dash, never NaN.
func fmtChange(v *float64) string {
	if v == nil {
		return "–"
	}
	return fmt.Sprintf("%.2f", *v)
}

func fmtPct(v *float64) string {
	if v == nil {
		return "–"
	}
	return fmt.Sprintf("%.2f%%", *v)
}
