package models

// Snapshot is the configuration view taken once at the start of a cycle.
// A cycle never observes a configuration change mid-flight.
type Snapshot struct {
	Symbols         []string
	Equity          float64
	RiskPerTradePct float64
	Period          string
	Interval        string
	Timeframe       string
	AutoTrade       bool
}
