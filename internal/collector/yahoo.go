package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/ccwx46/stock-data-ai/internal/model"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using Yahoo Finance public chart API.
type YahooFetcher struct {
	BaseURL    string
	Client     *http.Client
	SymbolMap  map[string]string // maps portfolio symbol to Yahoo ticker
	MaxRetries int
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy
// support. The symbol map fixes tickers whose common spelling differs
// from Yahoo's (class shares use a dash, renamed listings).
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		BaseURL: defaultYahooBaseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		SymbolMap: map[string]string{
			"BRK.B": "BRK-B",
			"BF.B":  "BF-B",
			"RDS.B": "SHEL",
			"BBL":   "BHP",
		},
		MaxRetries: 2,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []interface{} `json:"open"`
					High  []interface{} `json:"high"`
					Low   []interface{} `json:"low"`
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// FetchDailyHistory fetches daily bars over the requested lookback with a
// bounded exponential-backoff retry. Failures surface as an error after
// the last attempt; the pipeline converts that to a skip.
func (f *YahooFetcher) FetchDailyHistory(ctx context.Context, symbol string, years int) (model.DailySeries, error) {
	var lastErr error
	for attempt := 0; attempt <= f.MaxRetries; attempt++ {
		series, err := f.fetchChart(ctx, symbol, years)
		if err == nil {
			return series, nil
		}
		lastErr = err
		if attempt == f.MaxRetries {
			break
		}
		backoff := time.Duration(1<<uint(attempt)) * time.Second
		log.Printf("[WARN] yahoo fetch %s failed (attempt %d/%d): %v, retrying in %v",
			symbol, attempt+1, f.MaxRetries+1, err, backoff)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
	return nil, lastErr
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol string, years int) (model.DailySeries, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%dy",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), years)

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		// Valid response carrying no data: unknown or delisted symbol.
		return nil, nil
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	series := make(model.DailySeries, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			break // quote arrays can run short of the timestamp list
		}
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		day := time.Unix(ts, 0).UTC()
		series = append(series, model.DailyBar{
			Date:  time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Open:  o,
			High:  h,
			Low:   l,
			Close: c,
		})
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series, nil
}
