package di

import (
	"fmt"

	"SignalPulse/internal/domain/repository"
	"SignalPulse/internal/handler/api"
	mid "SignalPulse/internal/middleware"
	internalrepo "SignalPulse/internal/repository"
	"SignalPulse/internal/service/alpacabroker"
	"SignalPulse/internal/service/broadcast"
	"SignalPulse/internal/service/cache"
	"SignalPulse/internal/service/firehose"
	"SignalPulse/internal/service/ratelimit"
	"SignalPulse/internal/service/webpush"
	"SignalPulse/internal/service/yahoo"
	"SignalPulse/internal/usecase"
	"SignalPulse/pkg/config"
	pkgkafka "SignalPulse/pkg/kafka"
	"SignalPulse/pkg/logger"
	"SignalPulse/pkg/metrics"
	"SignalPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache selects the byte cache backend.
func ProvideCache(cfg *config.Config) cache.BytesCache {
	if cfg.Cache.Backend == "redis" {
		return cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return cache.NewMemoryCache()
}

// ProvidePriceProvider creates the Yahoo chart client behind the cache.
func ProvidePriceProvider(cfg *config.Config, c cache.BytesCache) repository.PriceProvider {
	return yahoo.NewCachedProvider(yahoo.New(), c, cfg.Cache.TTL)
}

// ProvideBroadcaster creates the subscriber fan-out.
func ProvideBroadcaster(cfg *config.Config, m repository.Metrics) *broadcast.Broadcaster {
	return broadcast.New(
		broadcast.WithQueueSize(cfg.Broadcast.QueueSize),
		broadcast.WithMetrics(m),
	)
}

// ProvideOrderSink creates the Alpaca broker when credentials are set.
// Without credentials order submission is disabled and the sink is nil.
func ProvideOrderSink(cfg *config.Config, log *logger.Logger) repository.OrderSink {
	if cfg.Alpaca.APIKey == "" || cfg.Alpaca.APISecret == "" {
		return nil
	}
	return alpacabroker.New(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.BaseURL, log)
}

// ProvideSubscriptionStore opens the push subscription file store.
func ProvideSubscriptionStore(cfg *config.Config) (repository.SubscriptionStore, error) {
	store, err := internalrepo.NewFileSubscriptionStore(cfg.Push.StorePath)
	if err != nil {
		return nil, fmt.Errorf("subscription store: %w", err)
	}
	return store, nil
}

// ProvideVAPIDKeys resolves or generates the Web Push signing keys.
func ProvideVAPIDKeys(cfg *config.Config) (webpush.VAPIDKeys, error) {
	return webpush.EnsureKeys(webpush.KeySource{
		Public:         cfg.Push.VAPIDPublicKey,
		Private:        cfg.Push.VAPIDPrivateKey,
		PublicKeyFile:  cfg.Push.PublicKeyFile,
		PrivateKeyFile: cfg.Push.PrivateKeyFile,
	})
}

// ProvidePushSink creates the Web Push sender; nil when push is disabled.
func ProvidePushSink(cfg *config.Config, store repository.SubscriptionStore, keys webpush.VAPIDKeys, log *logger.Logger) repository.PushSink {
	if !cfg.Push.Enabled {
		return nil
	}
	return webpush.NewSender(store, keys, cfg.Push.Subject, log)
}

// ProvideSignalPublisher creates the Kafka firehose, or a no-op when
// Kafka is disabled.
func ProvideSignalPublisher(cfg *config.Config) (repository.SignalPublisher, error) {
	if !cfg.Kafka.Enabled {
		return firehose.NopPublisher{}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return firehose.NewPublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideDispatcher creates the signal side-effect dispatcher.
func ProvideDispatcher(
	cfg *config.Config,
	orders repository.OrderSink,
	push repository.PushSink,
	m repository.Metrics,
	log *logger.Logger,
) *usecase.Dispatcher {
	return usecase.NewDispatcher(cfg, orders, push, m, log)
}

// ProvideNotifyPipeline buffers deliveries between scheduler and dispatcher.
func ProvideNotifyPipeline(dispatcher *usecase.Dispatcher, m repository.Metrics) *mid.NotifyPipeline {
	return mid.NewNotifyPipeline(dispatcher, m)
}

// ProvideAnalyzer creates the signal engine.
func ProvideAnalyzer() *usecase.Analyzer {
	return usecase.NewAnalyzer()
}

// ProvideScheduler creates the cycle scheduler.
func ProvideScheduler(
	cfg *config.Config,
	provider repository.PriceProvider,
	analyzer *usecase.Analyzer,
	broadcaster *broadcast.Broadcaster,
	pipeline *mid.NotifyPipeline,
	publisher repository.SignalPublisher,
	m repository.Metrics,
	log *logger.Logger,
) *usecase.Scheduler {
	return usecase.NewScheduler(cfg, provider, analyzer, broadcaster, pipeline, publisher, m, log)
}

// ProvideRateLimiter throttles on-demand analysis: burst of 5, one per second.
func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New(5, 1)
}

// ProvideHandler creates the HTTP API handler.
func ProvideHandler(
	cfg *config.Config,
	scheduler *usecase.Scheduler,
	broadcaster *broadcast.Broadcaster,
	store repository.SubscriptionStore,
	keys webpush.VAPIDKeys,
	limiter *ratelimit.Limiter,
	log *logger.Logger,
) *api.Handler {
	return api.NewHandler(cfg, scheduler, broadcaster, store, keys, limiter, log)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	scheduler *usecase.Scheduler,
	handler *api.Handler,
	publisher repository.SignalPublisher,
	log *logger.Logger,
) *server.App {
	return server.New(cfg, scheduler, handler, publisher, log)
}
