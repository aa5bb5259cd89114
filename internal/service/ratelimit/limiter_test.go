package ratelimit

import "testing"

func TestAllowConsumesCapacity(t *testing.T) {
	l := New(2, 0.0001)
	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("expected first two requests to pass")
	}
	if l.Allow("a") {
		t.Fatal("expected third request to be limited")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := New(1, 0.0001)
	if !l.Allow("a") {
		t.Fatal("first key should pass")
	}
	if !l.Allow("b") {
		t.Fatal("second key has its own bucket")
	}
	if l.Allow("a") {
		t.Fatal("first key should now be limited")
	}
}
