package repository

import (
	"path/filepath"
	"testing"

	"SignalPulse/internal/domain/models"
)

func newStore(t *testing.T, path string) *FileSubscriptionStore {
	t.Helper()
	s, err := NewFileSubscriptionStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func sub(endpoint string) models.PushSubscription {
	return models.PushSubscription{
		Endpoint: endpoint,
		Keys:     models.PushKeys{P256dh: "p", Auth: "a"},
	}
}

func TestAddDedupesByEndpoint(t *testing.T) {
	s := newStore(t, filepath.Join(t.TempDir(), "subs.json"))

	if err := s.Add(sub("https://push.example/1")); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(sub("https://push.example/1")); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(sub("https://push.example/2")); err != nil {
		t.Fatal(err)
	}
	if got := len(s.List()); got != 2 {
		t.Fatalf("len = %d, want 2", got)
	}
}

func TestRemoveUnknownEndpointIsNoop(t *testing.T) {
	s := newStore(t, filepath.Join(t.TempDir(), "subs.json"))
	if err := s.Remove("https://push.example/none"); err != nil {
		t.Fatal(err)
	}
}

func TestStoreSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subs.json")
	s := newStore(t, path)
	if err := s.Add(sub("https://push.example/1")); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(sub("https://push.example/2")); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove("https://push.example/1"); err != nil {
		t.Fatal(err)
	}

	reloaded := newStore(t, path)
	subs := reloaded.List()
	if len(subs) != 1 || subs[0].Endpoint != "https://push.example/2" {
		t.Fatalf("reloaded = %+v", subs)
	}
}

func TestListReturnsCopy(t *testing.T) {
	s := newStore(t, filepath.Join(t.TempDir(), "subs.json"))
	if err := s.Add(sub("https://push.example/1")); err != nil {
		t.Fatal(err)
	}
	list := s.List()
	list[0].Endpoint = "mutated"
	if s.List()[0].Endpoint != "https://push.example/1" {
		t.Fatal("List must not expose internal state")
	}
}
