// Package broadcast fans published messages out to every connected
// subscriber stream without ever blocking the publisher.
package broadcast

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	drepo "SignalPulse/internal/domain/repository"
)

// Message is one outbound frame: a heartbeat or a signal batch.
type Message struct {
	Type string `json:"type"`
	TS   string `json:"ts,omitempty"`
	Data any    `json:"data,omitempty"`
}

// Heartbeat builds the connection-open frame.
func Heartbeat() Message {
	return Message{Type: "heartbeat", TS: time.Now().UTC().Format(time.RFC3339)}
}

// Subscriber is one consumer's bounded FIFO queue of encoded frames.
// The stream loop serving the consumer reads from C; the Broadcaster
// owns registration and closes the channel on eviction.
type Subscriber struct {
	ch chan []byte
}

// C returns the receive side of the queue. The channel is closed when the
// subscriber is evicted or unsubscribed.
func (s *Subscriber) C() <-chan []byte { return s.ch }

// Broadcaster owns the registry of subscriber queues.
type Broadcaster struct {
	mu        sync.Mutex
	subs      map[*Subscriber]struct{}
	queueSize int
	metrics   drepo.Metrics
}

type Option func(*Broadcaster)

// WithQueueSize sets the per-subscriber queue capacity.
func WithQueueSize(n int) Option {
	return func(b *Broadcaster) {
		if n > 0 {
			b.queueSize = n
		}
	}
}

// WithMetrics attaches a metrics recorder for the subscriber gauge.
func WithMetrics(m drepo.Metrics) Option {
	return func(b *Broadcaster) { b.metrics = m }
}

func New(opts ...Option) *Broadcaster {
	b := &Broadcaster{
		subs:      make(map[*Subscriber]struct{}),
		queueSize: 16,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a new queue. The first frame on the queue is an
// immediate heartbeat; every subsequently published message follows in
// arrival order.
func (b *Broadcaster) Subscribe() *Subscriber {
	s := &Subscriber{ch: make(chan []byte, b.queueSize)}
	hb, _ := json.Marshal(Heartbeat())
	s.ch <- hb

	b.mu.Lock()
	b.subs[s] = struct{}{}
	n := len(b.subs)
	b.mu.Unlock()
	b.recordSubscribers(n)
	return s
}

// Unsubscribe removes the queue from the registry and closes it.
// Removing an already-removed subscriber is a no-op.
func (b *Broadcaster) Unsubscribe(s *Subscriber) {
	b.mu.Lock()
	if _, ok := b.subs[s]; ok {
		delete(b.subs, s)
		close(s.ch)
	}
	n := len(b.subs)
	b.mu.Unlock()
	b.recordSubscribers(n)
}

// Publish encodes msg once and delivers it to every registered queue.
// A full queue means its consumer fell behind: the queue is evicted and
// closed instead of blocking or partially dropping the publish. Publishing
// with zero subscribers succeeds and does nothing.
func (b *Broadcaster) Publish(msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	b.mu.Lock()
	var evicted int
	for s := range b.subs {
		select {
		case s.ch <- payload:
		default:
			delete(b.subs, s)
			close(s.ch)
			evicted++
		}
	}
	n := len(b.subs)
	b.mu.Unlock()

	b.recordSubscribers(n)
	if evicted > 0 && b.metrics != nil {
		b.metrics.RecordError("subscriber_evicted")
	}
	return nil
}

// Len returns the number of registered subscribers.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Broadcaster) recordSubscribers(n int) {
	if b.metrics != nil {
		b.metrics.RecordSubscribers(n)
	}
}
