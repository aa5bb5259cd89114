package middleware

import (
	"context"
	"sync"
	"testing"
	"time"

	"SignalPulse/internal/domain/models"
)

type recordingDispatcher struct {
	mu        sync.Mutex
	delivered []models.Signal
}

func (d *recordingDispatcher) Deliver(_ context.Context, sig models.Signal) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delivered = append(d.delivered, sig)
	return nil
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.delivered)
}

type nopMetrics struct{}

func (nopMetrics) RecordSignal(string, models.Action) {}
func (nopMetrics) RecordError(string)                 {}
func (nopMetrics) RecordLastPrice(string, float64)    {}
func (nopMetrics) RecordLatency(string, float64)      {}
func (nopMetrics) RecordSubscribers(int)              {}
func (nopMetrics) RecordPushSent(int)                 {}

func actionable(symbol string) models.Signal {
	return models.Signal{
		Symbol:     symbol,
		Action:     models.ActionBuy,
		Quantity:   1,
		EntryPrice: 100,
		Timestamp:  time.Now(),
	}
}

func TestEnqueueDelivers(t *testing.T) {
	d := &recordingDispatcher{}
	p := NewNotifyPipeline(d, nopMetrics{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	defer p.Stop()

	if err := p.Enqueue(actionable("AAPL")); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(time.Second)
	for d.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("signal was never delivered")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestEnqueueSkipsHold(t *testing.T) {
	d := &recordingDispatcher{}
	p := NewNotifyPipeline(d, nopMetrics{})

	sig := actionable("AAPL")
	sig.Action = models.ActionHold
	sig.Quantity = 0
	if err := p.Enqueue(sig); err != nil {
		t.Fatal(err)
	}
	if len(p.bufCh) != 0 {
		t.Fatal("hold signal must not be buffered")
	}
}

func TestEnqueueThrottlesPerSymbol(t *testing.T) {
	d := &recordingDispatcher{}
	p := NewNotifyPipeline(d, nopMetrics{}, WithCooldown(time.Hour))

	if err := p.Enqueue(actionable("AAPL")); err != nil {
		t.Fatal(err)
	}
	if err := p.Enqueue(actionable("AAPL")); err != nil {
		t.Fatal(err)
	}
	if err := p.Enqueue(actionable("MSFT")); err != nil {
		t.Fatal(err)
	}
	if len(p.bufCh) != 2 {
		t.Fatalf("buffered = %d, want 2 (second AAPL throttled)", len(p.bufCh))
	}
}

func TestEnqueueRejectsInvalid(t *testing.T) {
	p := NewNotifyPipeline(&recordingDispatcher{}, nopMetrics{})
	if err := p.Enqueue(models.Signal{}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestStopSurvivesRepeatedLifecycleCalls(t *testing.T) {
	p := NewNotifyPipeline(&recordingDispatcher{}, nopMetrics{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)
	p.Stop()
	p.Start(ctx)
	p.Stop()
	p.Stop()
}

func TestEnqueueFullBufferDrops(t *testing.T) {
	p := NewNotifyPipeline(&recordingDispatcher{}, nopMetrics{}, WithBufferSize(1), WithCooldown(time.Nanosecond))
	if err := p.Enqueue(actionable("AAPL")); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond) // clear the cooldown window
	if err := p.Enqueue(actionable("AAPL")); err == nil {
		t.Fatal("expected drop error on full buffer")
	}
}
