package util

import (
	"reflect"
	"testing"
)

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("42", 7); got != 42 {
		t.Fatalf("got %d", got)
	}
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("got %d", got)
	}
	if got := ParseIntDefault("nope", 7); got != 7 {
		t.Fatalf("got %d", got)
	}
}

func TestParseFloatDefault(t *testing.T) {
	if got := ParseFloatDefault("1.5", 0); got != 1.5 {
		t.Fatalf("got %v", got)
	}
	if got := ParseFloatDefault("x", 2.5); got != 2.5 {
		t.Fatalf("got %v", got)
	}
}

func TestParseBoolDefault(t *testing.T) {
	for _, s := range []string{"1", "true", "YES"} {
		if !ParseBoolDefault(s, false) {
			t.Fatalf("expected %q truthy", s)
		}
	}
	for _, s := range []string{"0", "false", "No"} {
		if ParseBoolDefault(s, true) {
			t.Fatalf("expected %q falsy", s)
		}
	}
	if !ParseBoolDefault("maybe", true) {
		t.Fatal("expected default on unknown value")
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := SplitAndTrim(" AAPL, MSFT ,,BTC-USD ")
	want := []string{"AAPL", "MSFT", "BTC-USD"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDedupeUpper(t *testing.T) {
	got := DedupeUpper([]string{"aapl", "AAPL", " msft", "btc-usd", "MSFT"})
	want := []string{"AAPL", "MSFT", "BTC-USD"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
