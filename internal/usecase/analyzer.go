package usecase

import (
	"math"
	"time"

	"SignalPulse/internal/domain/models"
	"SignalPulse/internal/strategy"
)

const (
	// Signals are only produced once this many closes exist.
	minHistory = 50

	// Base risk parameters. Fixed per trade regardless of volatility.
	stopLossPct   = 0.02
	takeProfitPct = 0.04

	engineTag        = "multi-strategy-v1"
	defaultOrderType = "MARKET"
)

// Analyzer turns a price history into a Signal by majority vote across the
// strategy voters, with risk-sized quantity and stop/target bracket.
type Analyzer struct{}

func NewAnalyzer() *Analyzer { return &Analyzer{} }

// Evaluate produces the Signal for one symbol. It never fails on valid
// numeric input: an empty or short history yields a HOLD signal with a
// reason instead of an error.
func (a *Analyzer) Evaluate(symbol string, series models.PriceSeries, equity, riskPct float64, timeframe string) models.Signal {
	now := time.Now().UTC()

	if series.Empty() {
		return models.Signal{
			Symbol:    symbol,
			Action:    models.ActionHold,
			Reason:    models.ReasonNoData,
			Timestamp: now,
		}
	}

	close := series.Closes()
	if len(close) < minHistory {
		return models.Signal{
			Symbol:    symbol,
			Action:    models.ActionHold,
			Reason:    models.ReasonInsufficientData,
			Timestamp: now,
		}
	}

	votes := strategy.Votes(close)
	action, confidence := tally(votes)

	entry := close[len(close)-1]
	sig := models.Signal{
		Symbol:          symbol,
		Action:          action,
		StrategyVotes:   votes,
		Confidence:      confidence,
		Timeframe:       timeframe,
		EntryPrice:      round6(entry),
		Equity:          equity,
		RiskPerTradePct: riskPct,
		Timestamp:       now,
		Engine:          engineTag,
		OrderType:       defaultOrderType,
	}

	riskPerUnit := entry * 0.01
	if action != models.ActionHold {
		var stop, target float64
		if action == models.ActionSell {
			stop = entry * (1 + stopLossPct)
			target = entry * (1 - takeProfitPct)
		} else {
			stop = entry * (1 - stopLossPct)
			target = entry * (1 + takeProfitPct)
		}
		sig.StopLossPct = ptr(round2(stopLossPct * 100))
		sig.TakeProfitPct = ptr(round2(takeProfitPct * 100))
		sig.StopLossPrice = ptr(round6(stop))
		sig.TakeProfitPrice = ptr(round6(target))

		riskPerUnit = entry * stopLossPct
		riskCapital := equity * riskPct / 100.0
		sig.Quantity = int(math.Max(1, math.Floor(riskCapital/math.Max(1e-8, riskPerUnit))))
	}

	if equity > 0 {
		sig.PositionPercent = round2(float64(sig.Quantity) * entry / equity * 100.0)
	}
	return sig
}

// tally counts BUY and SELL votes and derives action and confidence.
// On a HOLD outcome the confidence rewards closeness of the vote split;
// an exact tie scores the maximum. Preserved as-is per product decision.
func tally(votes map[string]models.Action) (models.Action, int) {
	var buy, sell int
	for _, v := range votes {
		switch v {
		case models.ActionBuy:
			buy++
		case models.ActionSell:
			sell++
		}
	}
	total := float64(len(votes))

	action := models.ActionHold
	if buy > sell {
		action = models.ActionBuy
	} else if sell > buy {
		action = models.ActionSell
	}

	var confidence float64
	if action != models.ActionHold {
		confidence = float64(max(buy, sell)) / total * 100.0
	} else {
		confidence = (1.0 - math.Abs(float64(buy-sell))/total) * 100.0
	}
	return action, int(math.Round(confidence))
}

// mergeSignals is the cross-timeframe aggregation step. Single-timeframe
// batches pass through unchanged.
func mergeSignals(signals []models.Signal) []models.Signal { return signals }

func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }
func round2(v float64) float64 { return math.Round(v*1e2) / 1e2 }
func ptr(v float64) *float64   { return &v }
