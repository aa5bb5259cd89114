// Package yahoo fetches OHLCV price history from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"SignalPulse/internal/domain/models"
	drepo "SignalPulse/internal/domain/repository"
)

const defaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// Client implements repository.PriceProvider against the chart endpoint.
type Client struct {
	http    *http.Client
	baseURL string
}

type Option func(*Client)

// WithBaseURL points the client at an alternate chart endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ drepo.PriceProvider = (*Client)(nil)

// Fetch downloads the price history for one symbol. A symbol Yahoo knows
// nothing about comes back as an empty series rather than an error.
func (c *Client) Fetch(ctx context.Context, symbol, period, interval string) (models.PriceSeries, error) {
	series := models.PriceSeries{Symbol: symbol}

	u := fmt.Sprintf("%s/%s?interval=%s&range=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(interval), url.QueryEscape(period))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return series, fmt.Errorf("build chart request: %w", err)
	}
	req.Header.Set("User-Agent", "SignalPulse/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return series, fmt.Errorf("fetch chart: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return series, nil
	}
	if resp.StatusCode != http.StatusOK {
		return series, fmt.Errorf("chart status %d for %s", resp.StatusCode, symbol)
	}

	var result chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return series, fmt.Errorf("decode chart response: %w", err)
	}
	if result.Chart.Error != nil {
		// Unknown symbol or delisted instrument: report as no data.
		return series, nil
	}
	if len(result.Chart.Result) == 0 {
		return series, nil
	}

	r := result.Chart.Result[0]
	if len(r.Indicators.Quote) == 0 {
		return series, nil
	}
	quotes := r.Indicators.Quote[0]

	candles := make([]models.Candle, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(quotes.Close) || quotes.Close[i] == nil {
			continue // gap in the series
		}
		candle := models.Candle{
			Time:  time.Unix(ts, 0).UTC(),
			Close: *quotes.Close[i],
		}
		if i < len(quotes.Open) && quotes.Open[i] != nil {
			candle.Open = *quotes.Open[i]
		}
		if i < len(quotes.High) && quotes.High[i] != nil {
			candle.High = *quotes.High[i]
		}
		if i < len(quotes.Low) && quotes.Low[i] != nil {
			candle.Low = *quotes.Low[i]
		}
		if i < len(quotes.Volume) && quotes.Volume[i] != nil {
			candle.Volume = float64(*quotes.Volume[i])
		}
		candles = append(candles, candle)
	}
	series.Candles = candles
	return series, nil
}

// Yahoo chart API response types.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta       chartMeta  `json:"meta"`
	Timestamp  []int64    `json:"timestamp"`
	Indicators indicators `json:"indicators"`
}

type chartMeta struct {
	Symbol             string  `json:"symbol"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	RegularMarketTime  int64   `json:"regularMarketTime"`
}

type indicators struct {
	Quote []quoteIndicator `json:"quote"`
}

type quoteIndicator struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}
