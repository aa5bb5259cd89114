package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"SignalPulse/internal/domain/models"
	domrepo "SignalPulse/internal/domain/repository"
)

// Dispatcher delivers one actionable signal to its side effects
// (order submission, push notification).
type Dispatcher interface {
	Deliver(ctx context.Context, sig models.Signal) error
}

// NotifyPipeline sits between the signal engine and its side-effect sinks.
// It validates, throttles per symbol, and buffers deliveries so a slow
// broker or push service never stalls a cycle.
type NotifyPipeline struct {
	dispatcher Dispatcher
	metrics    domrepo.Metrics
	cooldown   time.Duration
	bufSize    int
	bufCh      chan models.Signal
	stopCh     chan struct{}
	stopOnce   sync.Once
	started    bool
	mu         sync.Mutex
	lastSeen   map[string]time.Time // per-symbol last accepted time
}

type PipelineOption func(*NotifyPipeline)

// WithCooldown sets the minimum spacing between deliveries for one symbol.
func WithCooldown(d time.Duration) PipelineOption {
	return func(p *NotifyPipeline) {
		if d > 0 {
			p.cooldown = d
		}
	}
}

// WithBufferSize sets the delivery buffer size.
func WithBufferSize(n int) PipelineOption {
	return func(p *NotifyPipeline) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

// NewNotifyPipeline creates a new pipeline.
func NewNotifyPipeline(dispatcher Dispatcher, metrics domrepo.Metrics, opts ...PipelineOption) *NotifyPipeline {
	p := &NotifyPipeline{
		dispatcher: dispatcher,
		metrics:    metrics,
		cooldown:   30 * time.Second, // default per-symbol spacing
		bufSize:    256,
		stopCh:     make(chan struct{}),
		lastSeen:   make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.bufCh = make(chan models.Signal, p.bufSize)
	return p
}

// Start launches background draining of buffered deliveries with
// exponential backoff on dispatcher failures.
func (p *NotifyPipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		backoff := 50 * time.Millisecond
		for {
			select {
			case <-p.stopCh:
				return
			case <-ctx.Done():
				return
			case sig := <-p.bufCh:
				if err := p.dispatcher.Deliver(ctx, sig); err != nil {
					if backoff < 2*time.Second {
						backoff *= 2
					}
					p.metrics.RecordError("pipeline_deliver")
					time.Sleep(backoff)
					// requeue if space; drop otherwise
					select {
					case p.bufCh <- sig:
					default:
						p.metrics.RecordError("pipeline_buffer_drop")
					}
				} else {
					backoff = 50 * time.Millisecond
				}
			}
		}
	}()
}

// Stop stops the background draining. The pipeline is single-use:
// repeated Stop calls are no-ops and a later Start does not resume it.
func (p *NotifyPipeline) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)
	})
}

// Enqueue validates and buffers one signal for delivery. Non-actionable
// signals and symbols inside their cooldown window are skipped without
// error; a full buffer drops the delivery and records it.
func (p *NotifyPipeline) Enqueue(sig models.Signal) error {
	if err := validateSignal(sig); err != nil {
		p.metrics.RecordError("pipeline_validate")
		return err
	}
	if !sig.Tradeable() {
		return nil
	}
	if !p.allow(sig.Symbol, time.Now()) {
		p.metrics.RecordError("pipeline_throttle")
		return nil
	}

	select {
	case p.bufCh <- sig:
		return nil
	default:
		p.metrics.RecordError("pipeline_buffer_full")
		return fmt.Errorf("delivery buffer full, dropped %s %s", sig.Action, sig.Symbol)
	}
}

func validateSignal(sig models.Signal) error {
	if sig.Symbol == "" {
		return fmt.Errorf("symbol empty")
	}
	if sig.Timestamp.IsZero() {
		return fmt.Errorf("timestamp missing")
	}
	if sig.EntryPrice < 0 || sig.Quantity < 0 {
		return fmt.Errorf("negative entry price/quantity")
	}
	return nil
}

func (p *NotifyPipeline) allow(symbol string, now time.Time) bool {
	if p.cooldown <= 0 {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	last := p.lastSeen[symbol]
	if !last.IsZero() && now.Sub(last) < p.cooldown {
		return false
	}
	p.lastSeen[symbol] = now
	return true
}
