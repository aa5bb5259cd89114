package repository

import (
	"context"

	"SignalPulse/internal/domain/models"
)

// PriceProvider fetches the price history for one symbol. An unavailable
// symbol is reported as an empty series, not an error; errors are reserved
// for transport failures and are treated by callers as "no data" as well.
type PriceProvider interface {
	Fetch(ctx context.Context, symbol, period, interval string) (models.PriceSeries, error)
}

// OrderSink submits an order for a tradeable signal.
// The boolean reports acceptance; failures are non-fatal to the cycle.
type OrderSink interface {
	Submit(ctx context.Context, sig models.Signal) bool
}

// PushSink delivers a payload to every stored subscription and returns the
// number of successful deliveries. Dead endpoints are pruned from the store.
type PushSink interface {
	Notify(ctx context.Context, payload models.PushPayload) int
}

// SubscriptionStore persists push subscriptions, deduplicated by endpoint.
type SubscriptionStore interface {
	List() []models.PushSubscription
	Add(sub models.PushSubscription) error
	Remove(endpoint string) error
}

// SignalPublisher forwards a cycle's signal batch to an external bus.
type SignalPublisher interface {
	PublishBatch(ctx context.Context, signals []models.Signal) error
	Close() error
}

// Metrics records operational measurements.
type Metrics interface {
	RecordSignal(symbol string, action models.Action)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
	RecordSubscribers(n int)
	RecordPushSent(n int)
}
