package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ccwx46/stock-data-ai/internal/model"
)

// csvHeader is the fixed, documented column order of the tabular output.
// Downstream spreadsheet tooling depends on it; do not reorder.
var csvHeader = []string{"Month", "Category", "Ticker", "Open", "High", "Low", "Close", "Change(%)"}

// RenderCSV writes one row per (ticker, month), tickers in report order,
// months most-recent-first, truncated to the same display window as the
// HTML view. An undefined percent change is an empty field.
func (r *Renderer) RenderCSV(report *model.PortfolioReport, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, res := range report.Results {
		for _, b := range truncate(res.Monthly, r.MonthsDisplayed) {
			change := ""
			if b.ChangePct != nil {
				change = strconv.FormatFloat(*b.ChangePct, 'f', 2, 64)
			}
			if err := cw.Write([]string{
				b.MonthKey(),
				res.Category,
				res.Ticker,
				strconv.FormatFloat(b.Open, 'f', 2, 64),
				strconv.FormatFloat(b.High, 'f', 2, 64),
				strconv.FormatFloat(b.Low, 'f', 2, 64),
				strconv.FormatFloat(b.Close, 'f', 2, 64),
				change,
			}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV renders the table to a file. A write failure is fatal for the
// run.
func (r *Renderer) WriteCSV(report *model.PortfolioReport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output: %w", err)
	}
	defer f.Close()
	if err := r.RenderCSV(report, f); err != nil {
		return fmt.Errorf("render csv: %w", err)
	}
	return nil
}
