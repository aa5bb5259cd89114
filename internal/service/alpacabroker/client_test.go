package alpacabroker

import "testing"

func TestToAlpacaSymbol(t *testing.T) {
	cases := []struct{ in, want string }{
		{"BTC-USD", "BTCUSD"},
		{"ETH-USD", "ETHUSD"},
		{"AAPL", "AAPL"},
		{"BRK-B", "BRK-B"}, // only crypto pairs are collapsed
	}
	for _, c := range cases {
		if got := toAlpacaSymbol(c.in); got != c.want {
			t.Fatalf("toAlpacaSymbol(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
