package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"SignalPulse/internal/domain/models"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	signalsTotal  *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	lastPrice     *prometheus.GaugeVec
	latency       *prometheus.HistogramVec
	subscribers   prometheus.Gauge
	pushSentTotal prometheus.Counter
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		signalsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signalpulse_signals_total",
				Help: "Total number of signals produced, by action and symbol",
			},
			[]string{"action", "symbol"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signalpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "signalpulse_last_price",
				Help: "Last recorded close price for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "signalpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		subscribers: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "signalpulse_stream_subscribers",
				Help: "Number of connected stream subscribers",
			},
		),
		pushSentTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "signalpulse_push_sent_total",
				Help: "Total number of web push notifications delivered",
			},
		),
	}
}

// RecordSignal records a produced signal by action and symbol.
func (r *Recorder) RecordSignal(symbol string, action models.Action) {
	r.signalsTotal.WithLabelValues(string(action), symbol).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last close price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordSubscribers records the current subscriber count.
func (r *Recorder) RecordSubscribers(n int) {
	r.subscribers.Set(float64(n))
}

// RecordPushSent records delivered web push notifications.
func (r *Recorder) RecordPushSent(n int) {
	if n > 0 {
		r.pushSentTotal.Add(float64(n))
	}
}
