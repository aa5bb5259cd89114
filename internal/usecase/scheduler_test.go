package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"SignalPulse/internal/domain/models"
	"SignalPulse/internal/middleware"
	"SignalPulse/internal/service/broadcast"
	"SignalPulse/pkg/config"
	"SignalPulse/pkg/logger"
)

type fakeProvider struct {
	series map[string]models.PriceSeries
	errs   map[string]error
}

func (p *fakeProvider) Fetch(_ context.Context, symbol, _, _ string) (models.PriceSeries, error) {
	if err := p.errs[symbol]; err != nil {
		return models.PriceSeries{Symbol: symbol}, err
	}
	return p.series[symbol], nil
}

type fakePublisher struct {
	batches [][]models.Signal
}

func (p *fakePublisher) PublishBatch(_ context.Context, signals []models.Signal) error {
	p.batches = append(p.batches, signals)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeMetrics struct{ errors []string }

func (m *fakeMetrics) RecordSignal(string, models.Action) {}
func (m *fakeMetrics) RecordError(kind string)            { m.errors = append(m.errors, kind) }
func (m *fakeMetrics) RecordLastPrice(string, float64)    {}
func (m *fakeMetrics) RecordLatency(string, float64)      {}
func (m *fakeMetrics) RecordSubscribers(int)              {}
func (m *fakeMetrics) RecordPushSent(int)                 {}

type nopDispatcher struct{}

func (nopDispatcher) Deliver(context.Context, models.Signal) error { return nil }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func testConfig(symbols ...string) *config.Config {
	cfg := &config.Config{}
	cfg.Engine.Symbols = symbols
	cfg.Engine.Equity = 10000
	cfg.Engine.RiskPerTradePct = 1
	cfg.Engine.Period = "6mo"
	cfg.Engine.Interval = "1d"
	cfg.Engine.PollInterval = time.Minute
	cfg.Engine.WarmupDelay = time.Millisecond
	return cfg
}

func flatSeries(symbol string, n int, price float64) models.PriceSeries {
	candles := make([]models.Candle, n)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range candles {
		candles[i] = models.Candle{Time: base.AddDate(0, 0, i), Close: price}
	}
	return models.PriceSeries{Symbol: symbol, Candles: candles}
}

func newTestScheduler(t *testing.T, provider *fakeProvider, cfg *config.Config) (*Scheduler, *broadcast.Broadcaster, *fakePublisher, *fakeMetrics) {
	t.Helper()
	metrics := &fakeMetrics{}
	b := broadcast.New()
	pipeline := middleware.NewNotifyPipeline(nopDispatcher{}, metrics)
	publisher := &fakePublisher{}
	s := NewScheduler(cfg, provider, NewAnalyzer(), b, pipeline, publisher, metrics, testLogger(t))
	return s, b, publisher, metrics
}

func TestRunCycleBroadcastsBatch(t *testing.T) {
	provider := &fakeProvider{series: map[string]models.PriceSeries{
		"AAPL": flatSeries("AAPL", 60, 100),
	}}
	s, b, publisher, _ := newTestScheduler(t, provider, testConfig("AAPL"))

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)
	<-sub.C() // heartbeat

	batch, err := s.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if len(batch) != 1 || batch[0].Symbol != "AAPL" {
		t.Fatalf("batch = %+v", batch)
	}

	var frame struct {
		Type string          `json:"type"`
		Data []models.Signal `json:"data"`
	}
	if err := json.Unmarshal(<-sub.C(), &frame); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if frame.Type != "signals" || len(frame.Data) != 1 {
		t.Fatalf("frame = %+v", frame)
	}
	if frame.Data[0].Symbol != "AAPL" {
		t.Fatalf("frame symbol = %q", frame.Data[0].Symbol)
	}

	if len(publisher.batches) != 1 {
		t.Fatalf("firehose batches = %d, want 1", len(publisher.batches))
	}
}

func TestRunCycleIsolatesFetchFailure(t *testing.T) {
	provider := &fakeProvider{
		series: map[string]models.PriceSeries{
			"MSFT": flatSeries("MSFT", 60, 300),
		},
		errs: map[string]error{"AAPL": fmt.Errorf("upstream down")},
	}
	s, _, _, metrics := newTestScheduler(t, provider, testConfig("AAPL", "MSFT"))

	batch, err := s.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("batch len = %d, want 2", len(batch))
	}
	if batch[0].Action != models.ActionHold || batch[0].Reason != models.ReasonNoData {
		t.Fatalf("failed symbol = %+v, want no-data HOLD", batch[0])
	}
	if batch[1].Symbol != "MSFT" || batch[1].Reason != "" {
		t.Fatalf("healthy symbol = %+v", batch[1])
	}
	if len(metrics.errors) == 0 {
		t.Fatal("expected a fetch error to be recorded")
	}
}

func TestRunCycleRejectsInvalidSnapshot(t *testing.T) {
	cfg := testConfig("AAPL")
	cfg.Engine.Equity = -1
	s, _, publisher, _ := newTestScheduler(t, &fakeProvider{}, cfg)

	if _, err := s.RunCycle(context.Background()); err == nil {
		t.Fatal("expected snapshot error")
	}
	if len(publisher.batches) != 0 {
		t.Fatal("nothing may be published on an aborted cycle")
	}
}

func TestAnalyzeBroadcastsButNeverDispatches(t *testing.T) {
	provider := &fakeProvider{series: map[string]models.PriceSeries{
		"TSLA": flatSeries("TSLA", 60, 200),
	}}
	s, b, publisher, _ := newTestScheduler(t, provider, testConfig("AAPL"))

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)
	<-sub.C() // heartbeat

	batch, err := s.Analyze(context.Background(), []string{"TSLA"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(batch) != 1 || batch[0].Symbol != "TSLA" {
		t.Fatalf("batch = %+v", batch)
	}

	var frame struct {
		Type string          `json:"type"`
		Data []models.Signal `json:"data"`
	}
	if err := json.Unmarshal(<-sub.C(), &frame); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if frame.Type != "signals" || len(frame.Data) != 1 || frame.Data[0].Symbol != "TSLA" {
		t.Fatalf("frame = %+v", frame)
	}

	if len(publisher.batches) != 0 {
		t.Fatal("analyze must not reach the firehose")
	}
}

func TestAnalyzeDefaultsToConfiguredSymbols(t *testing.T) {
	provider := &fakeProvider{series: map[string]models.PriceSeries{
		"AAPL": flatSeries("AAPL", 60, 100),
	}}
	s, _, _, _ := newTestScheduler(t, provider, testConfig("AAPL"))

	batch, err := s.Analyze(context.Background(), nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(batch) != 1 || batch[0].Symbol != "AAPL" {
		t.Fatalf("batch = %+v", batch)
	}
}
