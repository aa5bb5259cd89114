package models

import "time"

// Action is a directional trade decision.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Strategy names used as keys of Signal.StrategyVotes.
const (
	StrategyRSI       = "RSI"
	StrategyMACD      = "MACD"
	StrategySMACross  = "SMA_CROSS"
	StrategyBollinger = "BOLLINGER"
	StrategyMomentum  = "MOMENTUM"
)

// Hold reasons set when a signal is forced to HOLD by missing history.
const (
	ReasonNoData           = "no_data"
	ReasonInsufficientData = "insufficient_data"
)

// Signal is one engine output for one symbol in one cycle. It is immutable
// once built; bracket fields are nil unless the action is BUY or SELL.
type Signal struct {
	Symbol          string            `json:"symbol"`
	Action          Action            `json:"action"`
	StrategyVotes   map[string]Action `json:"strategy_votes,omitempty"`
	Confidence      int               `json:"confidence"`
	Timeframe       string            `json:"timeframe,omitempty"`
	EntryPrice      float64           `json:"entry_price,omitempty"`
	StopLossPct     *float64          `json:"stop_loss_pct"`
	TakeProfitPct   *float64          `json:"take_profit_pct"`
	StopLossPrice   *float64          `json:"stop_loss_price"`
	TakeProfitPrice *float64          `json:"take_profit_price"`
	Quantity        int               `json:"quantity"`
	PositionPercent float64           `json:"position_percent"`
	Equity          float64           `json:"equity,omitempty"`
	RiskPerTradePct float64           `json:"risk_per_trade_pct,omitempty"`
	Timestamp       time.Time         `json:"timestamp"`
	Engine          string            `json:"engine,omitempty"`
	OrderType       string            `json:"order_type,omitempty"`
	Reason          string            `json:"reason,omitempty"`
}

// Tradeable reports whether the signal asks for an order.
func (s Signal) Tradeable() bool {
	return (s.Action == ActionBuy || s.Action == ActionSell) && s.Quantity > 0
}
