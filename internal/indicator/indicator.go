// Package indicator provides pure transforms over a closing-price series.
// All functions return a series aligned to the input index; positions where
// the indicator is undefined hold NaN, mirroring rolling-window semantics
// with a minimum-period gate.
package indicator

import "math"

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// SMA computes the arithmetic mean of the trailing window values.
// Undefined until window observations exist.
func SMA(series []float64, window int) []float64 {
	out := nanSlice(len(series))
	if window <= 0 || len(series) < window {
		return out
	}
	sum := 0.0
	for i, v := range series {
		sum += v
		if i >= window {
			sum -= series[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// EMA computes an exponentially weighted mean with smoothing
// alpha = 2/(span+1), seeded by the first observation. There is no
// minimum-period gate: every position has a value.
func EMA(series []float64, span int) []float64 {
	out := make([]float64, len(series))
	if len(series) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = series[0]
	for i := 1; i < len(series); i++ {
		out[i] = alpha*series[i] + (1.0-alpha)*out[i-1]
	}
	return out
}

// RSI computes the relative strength index over period. Positions before the
// rolling averages are defined are back-filled from the first defined value;
// a series with no defined value at all defaults to the neutral 50.
func RSI(close []float64, period int) []float64 {
	n := len(close)
	out := nanSlice(n)
	if period <= 0 {
		return fillNeutral(out)
	}

	gains := nanSlice(n)
	losses := nanSlice(n)
	for i := 1; i < n; i++ {
		delta := close[i] - close[i-1]
		if delta > 0 {
			gains[i], losses[i] = delta, 0
		} else {
			gains[i], losses[i] = 0, -delta
		}
	}

	// Rolling means need period non-NaN observations; the first delta is
	// undefined, so the first defined position is index period.
	for i := period; i < n; i++ {
		var gainSum, lossSum float64
		for j := i - period + 1; j <= i; j++ {
			gainSum += gains[j]
			lossSum += losses[j]
		}
		avgGain := gainSum / float64(period)
		avgLoss := lossSum / float64(period)
		if avgLoss == 0 {
			continue // undefined, resolved by the backfill below
		}
		rs := avgGain / avgLoss
		out[i] = 100.0 - 100.0/(1.0+rs)
	}

	// Backfill from the next defined value, then default remaining gaps to 50.
	next := math.NaN()
	for i := n - 1; i >= 0; i-- {
		if !math.IsNaN(out[i]) {
			next = out[i]
		} else if !math.IsNaN(next) {
			out[i] = next
		}
	}
	return fillNeutral(out)
}

func fillNeutral(series []float64) []float64 {
	for i, v := range series {
		if math.IsNaN(v) {
			series[i] = 50.0
		}
	}
	return series
}

// MACD computes the MACD line (EMA(fast)−EMA(slow)), its EMA(signal) line,
// and the histogram (line − signal).
func MACD(close []float64, fast, slow, signal int) (line, signalLine, histogram []float64) {
	emaFast := EMA(close, fast)
	emaSlow := EMA(close, slow)
	line = make([]float64, len(close))
	for i := range close {
		line[i] = emaFast[i] - emaSlow[i]
	}
	signalLine = EMA(line, signal)
	histogram = make([]float64, len(close))
	for i := range close {
		histogram[i] = line[i] - signalLine[i]
	}
	return line, signalLine, histogram
}

// Bollinger computes the SMA(window) midline and midline ± k·stddev bands.
// The standard deviation is the sample deviation over the trailing window.
func Bollinger(close []float64, window int, k float64) (lower, mid, upper []float64) {
	mid = SMA(close, window)
	lower = nanSlice(len(close))
	upper = nanSlice(len(close))
	if window <= 1 || len(close) < window {
		return lower, mid, upper
	}
	for i := window - 1; i < len(close); i++ {
		mean := mid[i]
		var sq float64
		for j := i - window + 1; j <= i; j++ {
			d := close[j] - mean
			sq += d * d
		}
		std := math.Sqrt(sq / float64(window-1))
		lower[i] = mean - k*std
		upper[i] = mean + k*std
	}
	return lower, mid, upper
}

// Momentum computes close[t]/close[t-window] − 1.
func Momentum(close []float64, window int) []float64 {
	out := nanSlice(len(close))
	for i := window; i < len(close); i++ {
		if close[i-window] != 0 {
			out[i] = close[i]/close[i-window] - 1.0
		}
	}
	return out
}
