package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"SignalPulse/internal/domain/models"
	"SignalPulse/internal/service/cache"
)

const chartBody = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "AAPL", "regularMarketPrice": 102.5},
      "timestamp": [1700000000, 1700086400, 1700172800],
      "indicators": {"quote": [{
        "open":   [100.0, null, 102.0],
        "high":   [101.0, null, 103.0],
        "low":    [99.0,  null, 101.0],
        "close":  [100.5, null, 102.5],
        "volume": [1000,  null, 1200]
      }]}
    }],
    "error": null
  }
}`

func TestFetchParsesChart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("range") != "6mo" || r.URL.Query().Get("interval") != "1d" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Write([]byte(chartBody))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	series, err := c.Fetch(context.Background(), "AAPL", "6mo", "1d")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	// The null bar is skipped.
	if series.Len() != 2 {
		t.Fatalf("len = %d, want 2", series.Len())
	}
	if series.Candles[0].Close != 100.5 || series.Candles[1].Close != 102.5 {
		t.Fatalf("closes = %v", series.Closes())
	}
	if series.Candles[1].Volume != 1200 {
		t.Fatalf("volume = %v", series.Candles[1].Volume)
	}
}

func TestFetchUnknownSymbolIsEmptySeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	series, err := c.Fetch(context.Background(), "NOPE", "6mo", "1d")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !series.Empty() || series.Symbol != "NOPE" {
		t.Fatalf("series = %+v, want empty", series)
	}
}

func TestFetchServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	if _, err := c.Fetch(context.Background(), "AAPL", "6mo", "1d"); err == nil {
		t.Fatal("expected error on 500")
	}
}

type countingProvider struct {
	calls  int
	series models.PriceSeries
}

func (p *countingProvider) Fetch(context.Context, string, string, string) (models.PriceSeries, error) {
	p.calls++
	return p.series, nil
}

func TestCachedProviderReusesFetch(t *testing.T) {
	upstream := &countingProvider{series: models.PriceSeries{
		Symbol:  "AAPL",
		Candles: []models.Candle{{Close: 100}},
	}}
	p := NewCachedProvider(upstream, cache.NewMemoryCache(), time.Minute)

	for i := 0; i < 3; i++ {
		series, err := p.Fetch(context.Background(), "AAPL", "6mo", "1d")
		if err != nil {
			t.Fatal(err)
		}
		if series.Len() != 1 {
			t.Fatalf("len = %d", series.Len())
		}
	}
	if upstream.calls != 1 {
		t.Fatalf("upstream calls = %d, want 1", upstream.calls)
	}
}

func TestCachedProviderSkipsEmptySeries(t *testing.T) {
	upstream := &countingProvider{series: models.PriceSeries{Symbol: "NOPE"}}
	p := NewCachedProvider(upstream, cache.NewMemoryCache(), time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := p.Fetch(context.Background(), "NOPE", "6mo", "1d"); err != nil {
			t.Fatal(err)
		}
	}
	if upstream.calls != 2 {
		t.Fatalf("upstream calls = %d, want 2 (empty series not cached)", upstream.calls)
	}
}
