package usecase

import (
	"context"
	"time"

	"SignalPulse/internal/domain/models"
	drepo "SignalPulse/internal/domain/repository"
	"SignalPulse/internal/middleware"
	"SignalPulse/internal/service/broadcast"
	"SignalPulse/pkg/config"
	"SignalPulse/pkg/logger"
)

// Scheduler drives the periodic analysis cycle: fetch history for every
// configured symbol, evaluate, then fan the batch out to stream
// subscribers, the delivery pipeline, and the Kafka firehose.
type Scheduler struct {
	cfg         *config.Config
	provider    drepo.PriceProvider
	analyzer    *Analyzer
	broadcaster *broadcast.Broadcaster
	pipeline    *middleware.NotifyPipeline
	publisher   drepo.SignalPublisher
	metrics     drepo.Metrics
	log         *logger.Logger
}

func NewScheduler(
	cfg *config.Config,
	provider drepo.PriceProvider,
	analyzer *Analyzer,
	broadcaster *broadcast.Broadcaster,
	pipeline *middleware.NotifyPipeline,
	publisher drepo.SignalPublisher,
	metrics drepo.Metrics,
	log *logger.Logger,
) *Scheduler {
	return &Scheduler{
		cfg:         cfg,
		provider:    provider,
		analyzer:    analyzer,
		broadcaster: broadcaster,
		pipeline:    pipeline,
		publisher:   publisher,
		metrics:     metrics,
		log:         log,
	}
}

// Start runs cycles until ctx is cancelled. The first cycle fires after a
// short warmup so subscribers connecting at startup catch it; subsequent
// cycles are spaced by the poll interval measured from cycle start.
func (s *Scheduler) Start(ctx context.Context) {
	s.pipeline.Start(ctx)

	select {
	case <-ctx.Done():
		return
	case <-time.After(s.cfg.Engine.WarmupDelay):
	}
	s.runOnce(ctx)

	ticker := time.NewTicker(s.cfg.Engine.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if _, err := s.RunCycle(ctx); err != nil {
		s.log.Error("cycle skipped", logger.Error(err))
	}
}

// RunCycle executes one full cycle and returns the produced batch.
// An invalid configuration snapshot aborts the cycle before any symbol is
// processed; per-symbol fetch failures degrade that symbol to a HOLD.
func (s *Scheduler) RunCycle(ctx context.Context) ([]models.Signal, error) {
	start := time.Now()
	snap, err := s.cfg.Snapshot()
	if err != nil {
		s.metrics.RecordError("snapshot_invalid")
		return nil, err
	}

	batch := s.evaluateSymbols(ctx, snap, snap.Symbols)

	if err := s.broadcaster.Publish(broadcast.Message{
		Type: "signals",
		TS:   time.Now().UTC().Format(time.RFC3339),
		Data: batch,
	}); err != nil {
		s.log.Error("broadcast batch", logger.Error(err))
	}

	for _, sig := range batch {
		if !sig.Tradeable() {
			continue
		}
		if err := s.pipeline.Enqueue(sig); err != nil {
			s.log.Warn("delivery dropped",
				logger.String("symbol", sig.Symbol),
				logger.Error(err))
		}
	}

	if err := s.publisher.PublishBatch(ctx, batch); err != nil {
		s.metrics.RecordError("firehose_publish")
		s.log.Warn("firehose publish failed", logger.Error(err))
	}

	s.metrics.RecordLatency("cycle", time.Since(start).Seconds())
	s.log.Info("cycle complete",
		logger.Int("symbols", len(batch)),
		logger.Duration("elapsed_ms", time.Since(start)))
	return batch, nil
}

// Analyze evaluates symbols on demand and fans the batch out to stream
// subscribers. Unlike RunCycle it never reaches the delivery pipeline or
// the firehose, so an API probe cannot place orders or send pushes. An
// empty override analyzes the configured symbol set.
func (s *Scheduler) Analyze(ctx context.Context, symbols []string) ([]models.Signal, error) {
	snap, err := s.cfg.Snapshot()
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		symbols = snap.Symbols
	}
	batch := s.evaluateSymbols(ctx, snap, symbols)

	if err := s.broadcaster.Publish(broadcast.Message{
		Type: "signals",
		TS:   time.Now().UTC().Format(time.RFC3339),
		Data: batch,
	}); err != nil {
		s.log.Error("broadcast batch", logger.Error(err))
	}
	return batch, nil
}

// evaluateSymbols fetches and scores each symbol in order. A provider
// failure for one symbol is isolated: that symbol degrades to a no-data
// HOLD and the rest of the batch proceeds.
func (s *Scheduler) evaluateSymbols(ctx context.Context, snap models.Snapshot, symbols []string) []models.Signal {
	batch := make([]models.Signal, 0, len(symbols))
	for _, symbol := range symbols {
		series, err := s.provider.Fetch(ctx, symbol, snap.Period, snap.Interval)
		if err != nil {
			s.metrics.RecordError("fetch_" + symbol)
			s.log.Warn("fetch failed",
				logger.String("symbol", symbol),
				logger.Error(err))
			series = models.PriceSeries{Symbol: symbol}
		}

		sig := s.analyzer.Evaluate(symbol, series, snap.Equity, snap.RiskPerTradePct, snap.Timeframe)
		s.metrics.RecordSignal(symbol, sig.Action)
		if !series.Empty() {
			s.metrics.RecordLastPrice(symbol, series.Candles[series.Len()-1].Close)
		}
		batch = append(batch, sig)
	}
	return mergeSignals(batch)
}
