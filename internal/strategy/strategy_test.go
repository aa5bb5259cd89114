package strategy

import (
	"testing"

	"SignalPulse/internal/domain/models"
)

func flatSeries(n int, price float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = price
	}
	return out
}

func TestVoteRSIOversold(t *testing.T) {
	series := make([]float64, 30)
	price := 200.0
	for i := range series {
		price -= 1
		series[i] = price
	}
	if got := VoteRSI(series); got != models.ActionBuy {
		t.Fatalf("steady decline vote = %v, want BUY", got)
	}
}

func TestVoteRSIOverbought(t *testing.T) {
	series := make([]float64, 30)
	price := 100.0
	for i := range series {
		if i%3 == 2 {
			price -= 0.1
		} else {
			price += 3
		}
		series[i] = price
	}
	if got := VoteRSI(series); got != models.ActionSell {
		t.Fatalf("steady climb vote = %v, want SELL", got)
	}
}

func TestVoteRSINeutralOnRiseWithoutLosses(t *testing.T) {
	series := make([]float64, 30)
	for i := range series {
		series[i] = 100 + float64(i)
	}
	// No losing bars means RSI never defines and defaults to neutral.
	if got := VoteRSI(series); got != models.ActionHold {
		t.Fatalf("vote = %v, want HOLD", got)
	}
}

func TestVoteMACDCrossUp(t *testing.T) {
	series := append(flatSeries(30, 100), 110)
	if got := VoteMACD(series); got != models.ActionBuy {
		t.Fatalf("vote = %v, want BUY", got)
	}
}

func TestVoteMACDCrossDown(t *testing.T) {
	series := append(flatSeries(30, 100), 90)
	if got := VoteMACD(series); got != models.ActionSell {
		t.Fatalf("vote = %v, want SELL", got)
	}
}

func TestVoteMACDFlat(t *testing.T) {
	if got := VoteMACD(flatSeries(31, 100)); got != models.ActionHold {
		t.Fatalf("vote = %v, want HOLD", got)
	}
}

func TestVoteSMACrossGolden(t *testing.T) {
	series := append(flatSeries(200, 100), 150)
	if got := VoteSMACross(series); got != models.ActionBuy {
		t.Fatalf("vote = %v, want BUY", got)
	}
}

func TestVoteSMACrossDeath(t *testing.T) {
	series := append(flatSeries(200, 100), 50)
	if got := VoteSMACross(series); got != models.ActionSell {
		t.Fatalf("vote = %v, want SELL", got)
	}
}

func TestVoteSMACrossNeedsHistory(t *testing.T) {
	if got := VoteSMACross(flatSeries(199, 100)); got != models.ActionHold {
		t.Fatalf("vote = %v, want HOLD with <200 bars", got)
	}
}

func TestVoteBollinger(t *testing.T) {
	base := make([]float64, 19)
	for i := range base {
		if i%2 == 0 {
			base[i] = 99
		} else {
			base[i] = 101
		}
	}
	if got := VoteBollinger(append(base, 90)); got != models.ActionBuy {
		t.Fatalf("below lower band vote = %v, want BUY", got)
	}
	if got := VoteBollinger(append(base, 110)); got != models.ActionSell {
		t.Fatalf("above upper band vote = %v, want SELL", got)
	}
	if got := VoteBollinger(append(base, 100)); got != models.ActionHold {
		t.Fatalf("inside bands vote = %v, want HOLD", got)
	}
}

func TestVoteMomentum(t *testing.T) {
	if got := VoteMomentum(append(flatSeries(11, 100), 102)); got != models.ActionBuy {
		t.Fatalf("vote = %v, want BUY", got)
	}
	if got := VoteMomentum(append(flatSeries(11, 100), 98)); got != models.ActionSell {
		t.Fatalf("vote = %v, want SELL", got)
	}
	if got := VoteMomentum(append(flatSeries(11, 100), 100.5)); got != models.ActionHold {
		t.Fatalf("vote = %v, want HOLD", got)
	}
	if got := VoteMomentum(flatSeries(10, 100)); got != models.ActionHold {
		t.Fatalf("vote = %v, want HOLD with short history", got)
	}
}

func TestVotesAllStrategies(t *testing.T) {
	votes := Votes(flatSeries(250, 100))
	want := []string{
		models.StrategyRSI,
		models.StrategyMACD,
		models.StrategySMACross,
		models.StrategyBollinger,
		models.StrategyMomentum,
	}
	if len(votes) != len(want) {
		t.Fatalf("got %d votes, want %d", len(votes), len(want))
	}
	for _, name := range want {
		if _, ok := votes[name]; !ok {
			t.Fatalf("missing vote for %s", name)
		}
	}
}
