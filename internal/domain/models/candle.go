package models

import "time"

// Candle represents one OHLCV bar of a price history.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries is a time-ordered price history for one symbol. It is owned
// by the cycle that fetched it and never mutated afterwards.
type PriceSeries struct {
	Symbol  string
	Candles []Candle
}

// Empty reports whether the series carries no bars.
func (s PriceSeries) Empty() bool { return len(s.Candles) == 0 }

// Len returns the number of bars.
func (s PriceSeries) Len() int { return len(s.Candles) }

// Closes returns the closing prices in time order.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		out[i] = c.Close
	}
	return out
}
