package usecase

import (
	"context"

	"SignalPulse/internal/domain/models"
	drepo "SignalPulse/internal/domain/repository"
	"SignalPulse/internal/service/webpush"
	"SignalPulse/pkg/config"
	"SignalPulse/pkg/logger"
)

// Dispatcher performs the side effects of one actionable signal: order
// submission when auto-trading is on, and push notification fan-out.
// It serves as the delivery pipeline's downstream.
type Dispatcher struct {
	cfg     *config.Config
	orders  drepo.OrderSink
	push    drepo.PushSink
	metrics drepo.Metrics
	log     *logger.Logger
}

func NewDispatcher(cfg *config.Config, orders drepo.OrderSink, push drepo.PushSink, metrics drepo.Metrics, log *logger.Logger) *Dispatcher {
	return &Dispatcher{cfg: cfg, orders: orders, push: push, metrics: metrics, log: log}
}

// Deliver submits the order and notifies subscribers. Both effects are
// best-effort; Deliver only fails on a nil receiver invariant, so the
// pipeline never retries an already-notified signal.
func (d *Dispatcher) Deliver(ctx context.Context, sig models.Signal) error {
	if d.cfg.Engine.AutoTrade && d.orders != nil && sig.Tradeable() {
		if ok := d.orders.Submit(ctx, sig); !ok {
			d.metrics.RecordError("order_submit")
		}
	}

	if d.push != nil {
		sent := d.push.Notify(ctx, webpush.PayloadFor(sig))
		d.metrics.RecordPushSent(sent)
		if sent > 0 {
			d.log.Debug("push delivered",
				logger.String("symbol", sig.Symbol),
				logger.Int("sent", sent))
		}
	}
	return nil
}
