// Package webpush delivers browser push notifications for actionable
// signals using VAPID-authenticated Web Push.
package webpush

import (
	"context"
	"encoding/json"
	"net/http"

	wp "github.com/SherClockHolmes/webpush-go"

	"SignalPulse/internal/domain/models"
	drepo "SignalPulse/internal/domain/repository"
	"SignalPulse/pkg/logger"
)

// Sender implements repository.PushSink over a subscription store.
type Sender struct {
	store   drepo.SubscriptionStore
	keys    VAPIDKeys
	subject string
	log     *logger.Logger
}

func NewSender(store drepo.SubscriptionStore, keys VAPIDKeys, subject string, log *logger.Logger) *Sender {
	return &Sender{store: store, keys: keys, subject: subject, log: log}
}

var _ drepo.PushSink = (*Sender)(nil)

// Notify sends the payload to every stored subscription and returns the
// number of successful deliveries. Endpoints that report 404 or 410 are
// gone and get pruned from the store.
func (s *Sender) Notify(ctx context.Context, payload models.PushPayload) int {
	subs := s.store.List()
	if len(subs) == 0 {
		return 0
	}

	body, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("encode push payload", logger.Error(err))
		return 0
	}

	opts := &wp.Options{
		Subscriber:      s.subject,
		VAPIDPublicKey:  s.keys.Public,
		VAPIDPrivateKey: s.keys.Private,
		TTL:             60,
	}

	sent := 0
	for _, sub := range subs {
		target := &wp.Subscription{
			Endpoint: sub.Endpoint,
			Keys: wp.Keys{
				P256dh: sub.Keys.P256dh,
				Auth:   sub.Keys.Auth,
			},
		}
		resp, err := wp.SendNotificationWithContext(ctx, body, target, opts)
		if err != nil {
			s.log.Warn("push delivery failed",
				logger.String("endpoint", sub.Endpoint),
				logger.Error(err))
			continue
		}
		resp.Body.Close()
		switch resp.StatusCode {
		case http.StatusNotFound, http.StatusGone:
			if err := s.store.Remove(sub.Endpoint); err != nil {
				s.log.Warn("prune dead subscription", logger.Error(err))
			} else {
				s.log.Info("pruned dead subscription", logger.String("endpoint", sub.Endpoint))
			}
		default:
			if resp.StatusCode < 300 {
				sent++
			}
		}
	}
	return sent
}

// PayloadFor builds the notification body for one actionable signal.
func PayloadFor(sig models.Signal) models.PushPayload {
	return models.PushPayload{
		Title:           "Trade signal: " + string(sig.Action) + " " + sig.Symbol,
		Body:            "Multi-strategy engine produced an actionable signal",
		Symbol:          sig.Symbol,
		Action:          sig.Action,
		Quantity:        sig.Quantity,
		PositionPercent: sig.PositionPercent,
		EntryPrice:      sig.EntryPrice,
		TakeProfitPrice: sig.TakeProfitPrice,
		StopLossPrice:   sig.StopLossPrice,
	}
}
