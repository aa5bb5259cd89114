// Package firehose streams every produced signal batch to Kafka for
// downstream consumers. Delivery is best-effort; a broker outage never
// affects the cycle.
package firehose

import (
	"context"

	"SignalPulse/internal/domain/models"
	drepo "SignalPulse/internal/domain/repository"
	"SignalPulse/pkg/kafka"
)

// Publisher implements repository.SignalPublisher on a Kafka producer.
// Messages are keyed by symbol so per-symbol ordering survives partitioning.
type Publisher struct {
	producer *kafka.Producer
	topic    string
}

func NewPublisher(producer *kafka.Producer, topic string) *Publisher {
	return &Publisher{producer: producer, topic: topic}
}

var _ drepo.SignalPublisher = (*Publisher)(nil)

func (p *Publisher) PublishBatch(ctx context.Context, signals []models.Signal) error {
	if len(signals) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(signals))
	for _, sig := range signals {
		msgs = append(msgs, kafka.Message{Key: []byte(sig.Symbol), Value: sig})
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}

// NopPublisher discards batches; used when Kafka is disabled.
type NopPublisher struct{}

var _ drepo.SignalPublisher = NopPublisher{}

func (NopPublisher) PublishBatch(context.Context, []models.Signal) error { return nil }
func (NopPublisher) Close() error                                        { return nil }
