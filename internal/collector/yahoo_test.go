package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartBody = `{"chart":{"result":[{
	"timestamp":[1705363200,1705276800,1705449600],
	"indicators":{"quote":[{
		"open":[104.0,100.0,null],
		"high":[108.0,110.0,null],
		"low":[100.0,95.0,null],
		"close":[107.0,105.0,null]
	}]}
}]}}`

func newTestFetcher(url string) *YahooFetcher {
	f := NewYahooFetcher("")
	f.BaseURL = url
	f.MaxRetries = 0
	return f
}

func TestYahooFetcher_ParsesAndSortsChart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/SPY", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.Equal(t, "10y", r.URL.Query().Get("range"))
		fmt.Fprint(w, chartBody)
	}))
	defer srv.Close()

	series, err := newTestFetcher(srv.URL).FetchDailyHistory(context.Background(), "SPY", 10)
	require.NoError(t, err)
	// Null bar dropped, remaining bars sorted chronologically.
	require.Len(t, series, 2)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), series[0].Date)
	assert.Equal(t, 100.0, series[0].Open)
	assert.Equal(t, time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC), series[1].Date)
	assert.Equal(t, 107.0, series[1].Close)
	require.NoError(t, series.Validate())
}

func TestYahooFetcher_MapsSymbols(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, chartBody)
	}))
	defer srv.Close()

	_, err := newTestFetcher(srv.URL).FetchDailyHistory(context.Background(), "BRK.B", 10)
	require.NoError(t, err)
	assert.Equal(t, "/v8/finance/chart/BRK-B", gotPath)
}

func TestYahooFetcher_ShortQuoteArrays(t *testing.T) {
	// Three timestamps but only two quote entries: the tail is dropped.
	body := `{"chart":{"result":[{
		"timestamp":[1705276800,1705363200,1705449600],
		"indicators":{"quote":[{
			"open":[100.0,104.0],
			"high":[110.0,108.0],
			"low":[95.0,100.0],
			"close":[105.0,107.0]
		}]}
	}]}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	series, err := newTestFetcher(srv.URL).FetchDailyHistory(context.Background(), "SPY", 10)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, 105.0, series[0].Close)
	assert.Equal(t, 107.0, series[1].Close)
}

func TestYahooFetcher_EmptyResultIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[]}}`)
	}))
	defer srv.Close()

	series, err := newTestFetcher(srv.URL).FetchDailyHistory(context.Background(), "ZZZZ", 10)
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestYahooFetcher_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	}))
	defer srv.Close()

	_, err := newTestFetcher(srv.URL).FetchDailyHistory(context.Background(), "NOPE", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}

func TestYahooFetcher_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestFetcher(srv.URL).FetchDailyHistory(context.Background(), "SPY", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
