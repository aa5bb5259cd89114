// Package repository holds persistence adapters for domain repositories.
package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"SignalPulse/internal/domain/models"
	drepo "SignalPulse/internal/domain/repository"
)

// FileSubscriptionStore persists push subscriptions as a JSON array on disk.
// The file is rewritten on every mutation; reads are served from memory.
type FileSubscriptionStore struct {
	mu   sync.Mutex
	path string
	subs []models.PushSubscription
}

func NewFileSubscriptionStore(path string) (*FileSubscriptionStore, error) {
	s := &FileSubscriptionStore{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

var _ drepo.SubscriptionStore = (*FileSubscriptionStore)(nil)

func (s *FileSubscriptionStore) load() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read subscriptions: %w", err)
	}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, &s.subs); err != nil {
		return fmt.Errorf("parse subscriptions: %w", err)
	}
	return nil
}

// flush writes the current set under the lock held by the caller.
func (s *FileSubscriptionStore) flush() error {
	b, err := json.MarshalIndent(s.subs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode subscriptions: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write subscriptions: %w", err)
	}
	return nil
}

// List returns a copy of the stored subscriptions.
func (s *FileSubscriptionStore) List() []models.PushSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PushSubscription, len(s.subs))
	copy(out, s.subs)
	return out
}

// Add stores a subscription, replacing any existing one with the same
// endpoint.
func (s *FileSubscriptionStore) Add(sub models.PushSubscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.subs {
		if existing.Endpoint == sub.Endpoint {
			s.subs[i] = sub
			return s.flush()
		}
	}
	s.subs = append(s.subs, sub)
	return s.flush()
}

// Remove drops the subscription with the given endpoint. Removing an
// unknown endpoint is a no-op.
func (s *FileSubscriptionStore) Remove(endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.subs {
		if existing.Endpoint == endpoint {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return s.flush()
		}
	}
	return nil
}
