// Package strategy holds the independent voters that map a closing-price
// series to a directional opinion. Every voter requires a minimum history
// and returns HOLD when it cannot decide.
package strategy

import (
	"SignalPulse/internal/domain/models"
	"SignalPulse/internal/indicator"
)

const (
	rsiPeriod      = 14
	macdFast       = 12
	macdSlow       = 26
	macdSignal     = 9
	smaShortWindow = 50
	smaLongWindow  = 200
	bollWindow     = 20
	bollK          = 2.0
	momWindow      = 10
	momThreshold   = 0.01
)

// VoteRSI buys on an upward cross of 30 or deep oversold (<25), sells on a
// downward cross of 70 or deep overbought (>75).
func VoteRSI(close []float64) models.Action {
	rsi := indicator.RSI(close, rsiPeriod)
	if len(rsi) < 2 {
		return models.ActionHold
	}
	prev, curr := rsi[len(rsi)-2], rsi[len(rsi)-1]
	switch {
	case prev < 30 && curr >= 30:
		return models.ActionBuy
	case prev > 70 && curr <= 70:
		return models.ActionSell
	case curr < 25:
		return models.ActionBuy
	case curr > 75:
		return models.ActionSell
	}
	return models.ActionHold
}

// VoteMACD reacts to the MACD line crossing its signal line.
func VoteMACD(close []float64) models.Action {
	line, signal, _ := indicator.MACD(close, macdFast, macdSlow, macdSignal)
	if len(line) < 2 {
		return models.ActionHold
	}
	prev := line[len(line)-2] - signal[len(signal)-2]
	curr := line[len(line)-1] - signal[len(signal)-1]
	switch {
	case prev <= 0 && curr > 0:
		return models.ActionBuy
	case prev >= 0 && curr < 0:
		return models.ActionSell
	}
	return models.ActionHold
}

// VoteSMACross reacts to a golden/death cross of SMA(50) over SMA(200).
func VoteSMACross(close []float64) models.Action {
	if len(close) < smaLongWindow {
		return models.ActionHold
	}
	short := indicator.SMA(close, smaShortWindow)
	long := indicator.SMA(close, smaLongWindow)
	prev := short[len(short)-2] - long[len(long)-2]
	curr := short[len(short)-1] - long[len(long)-1]
	switch {
	case prev <= 0 && curr > 0:
		return models.ActionBuy
	case prev >= 0 && curr < 0:
		return models.ActionSell
	}
	return models.ActionHold
}

// VoteBollinger buys at or below the lower band, sells at or above the upper.
func VoteBollinger(close []float64) models.Action {
	if len(close) < bollWindow {
		return models.ActionHold
	}
	lower, _, upper := indicator.Bollinger(close, bollWindow, bollK)
	price := close[len(close)-1]
	switch {
	case price <= lower[len(lower)-1]:
		return models.ActionBuy
	case price >= upper[len(upper)-1]:
		return models.ActionSell
	}
	return models.ActionHold
}

// VoteMomentum reacts to the 10-bar return crossing ±1%.
func VoteMomentum(close []float64) models.Action {
	if len(close) < momWindow+1 {
		return models.ActionHold
	}
	mom := indicator.Momentum(close, momWindow)
	curr := mom[len(mom)-1]
	switch {
	case curr > momThreshold:
		return models.ActionBuy
	case curr < -momThreshold:
		return models.ActionSell
	}
	return models.ActionHold
}

// Votes runs all five voters over the closing prices.
func Votes(close []float64) map[string]models.Action {
	return map[string]models.Action{
		models.StrategyRSI:       VoteRSI(close),
		models.StrategyMACD:      VoteMACD(close),
		models.StrategySMACross:  VoteSMACross(close),
		models.StrategyBollinger: VoteBollinger(close),
		models.StrategyMomentum:  VoteMomentum(close),
	}
}
