package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"SignalPulse/internal/domain/models"
	drepo "SignalPulse/internal/domain/repository"
	"SignalPulse/pkg/util"
)

// ErrInvalidSnapshot marks a configuration that cannot drive a cycle.
var ErrInvalidSnapshot = fmt.Errorf("invalid configuration snapshot")

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Engine struct {
		Symbols         []string      `yaml:"symbols"`
		Equity          float64       `yaml:"equity"`
		RiskPerTradePct float64       `yaml:"risk_per_trade_pct"`
		Period          string        `yaml:"period"`
		Interval        string        `yaml:"interval"`
		PollInterval    time.Duration `yaml:"poll_interval"`
		WarmupDelay     time.Duration `yaml:"warmup_delay"`
		AutoTrade       bool          `yaml:"auto_trade"`
	} `yaml:"engine"`
	Broadcast struct {
		QueueSize int `yaml:"queue_size"`
	} `yaml:"broadcast"`
	Cache struct {
		Backend string        `yaml:"backend"` // memory or redis
		TTL     time.Duration `yaml:"ttl"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Alpaca struct {
		APIKey    string `yaml:"api_key"`
		APISecret string `yaml:"api_secret"`
		BaseURL   string `yaml:"base_url"`
	} `yaml:"alpaca"`
	Push struct {
		Enabled         bool   `yaml:"enabled"`
		StorePath       string `yaml:"store_path"`
		VAPIDPublicKey  string `yaml:"vapid_public_key"`
		VAPIDPrivateKey string `yaml:"vapid_private_key"`
		Subject         string `yaml:"subject"`
		PrivateKeyFile  string `yaml:"private_key_file"`
		PublicKeyFile   string `yaml:"public_key_file"`
	} `yaml:"push"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
	} `yaml:"kafka"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.ApplyEnv()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// ApplyEnv overrides configuration fields from environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Engine.Symbols = util.SplitAndTrim(v)
	}
	c.Engine.Equity = util.ParseFloatDefault(os.Getenv("ACCOUNT_EQUITY"), c.Engine.Equity)
	c.Engine.RiskPerTradePct = util.ParseFloatDefault(os.Getenv("RISK_PER_TRADE_PCT"), c.Engine.RiskPerTradePct)
	if v := os.Getenv("YF_PERIOD"); v != "" {
		c.Engine.Period = v
	}
	if v := os.Getenv("YF_INTERVAL"); v != "" {
		c.Engine.Interval = v
	}
	c.Engine.AutoTrade = util.ParseBoolDefault(os.Getenv("AUTO_TRADE"), c.Engine.AutoTrade)
	c.Server.Port = util.ParseIntDefault(os.Getenv("PORT"), c.Server.Port)
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		c.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		c.Alpaca.APISecret = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = util.SplitAndTrim(v)
		c.Kafka.Enabled = true
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Backend = "redis"
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("VAPID_PUBLIC_KEY"); v != "" {
		c.Push.VAPIDPublicKey = v
	}
	if v := os.Getenv("VAPID_PRIVATE_KEY"); v != "" {
		c.Push.VAPIDPrivateKey = v
	}
	if v := os.Getenv("VAPID_SUBJECT"); v != "" {
		c.Push.Subject = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 0 // streaming endpoints must not time out
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if len(c.Engine.Symbols) == 0 {
		c.Engine.Symbols = []string{"AAPL", "MSFT", "BTC-USD", "ETH-USD"}
	}
	if c.Engine.Equity == 0 {
		c.Engine.Equity = 10000
	}
	if c.Engine.RiskPerTradePct == 0 {
		c.Engine.RiskPerTradePct = 1.0
	}
	if c.Engine.Period == "" {
		c.Engine.Period = "6mo"
	}
	if c.Engine.Interval == "" {
		c.Engine.Interval = "1d"
	}
	if c.Engine.PollInterval == 0 {
		c.Engine.PollInterval = 60 * time.Second
	}
	if c.Engine.WarmupDelay == 0 {
		c.Engine.WarmupDelay = 100 * time.Millisecond
	}
	if c.Broadcast.QueueSize == 0 {
		c.Broadcast.QueueSize = 16
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 45 * time.Second
	}
	if c.Alpaca.BaseURL == "" {
		c.Alpaca.BaseURL = "https://paper-api.alpaca.markets"
	}
	if c.Push.StorePath == "" {
		c.Push.StorePath = "subscriptions.json"
	}
	if c.Push.Subject == "" {
		c.Push.Subject = "mailto:admin@example.com"
	}
	if c.Push.PrivateKeyFile == "" {
		c.Push.PrivateKeyFile = "vapid_private_key.txt"
	}
	if c.Push.PublicKeyFile == "" {
		c.Push.PublicKeyFile = "vapid_public_key.txt"
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "signals"
	}
	if c.Kafka.Compression == "" {
		c.Kafka.Compression = "gzip"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Engine.Symbols) == 0 {
		return fmt.Errorf("engine.symbols cannot be empty")
	}
	if c.Engine.Equity <= 0 {
		return fmt.Errorf("engine.equity must be positive, got %v", c.Engine.Equity)
	}
	if c.Engine.RiskPerTradePct <= 0 {
		return fmt.Errorf("engine.risk_per_trade_pct must be positive, got %v", c.Engine.RiskPerTradePct)
	}
	if c.Engine.PollInterval <= 0 {
		return fmt.Errorf("engine.poll_interval must be positive")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers required when kafka is enabled")
	}
	return nil
}

// Snapshot builds the immutable per-cycle configuration view. Symbols are
// deduplicated; a non-positive equity or risk is rejected here so it never
// surfaces mid-cycle.
func (c *Config) Snapshot() (models.Snapshot, error) {
	symbols := util.DedupeUpper(c.Engine.Symbols)
	if len(symbols) == 0 {
		return models.Snapshot{}, fmt.Errorf("%w: no symbols", ErrInvalidSnapshot)
	}
	if c.Engine.Equity <= 0 {
		return models.Snapshot{}, fmt.Errorf("%w: equity %v", ErrInvalidSnapshot, c.Engine.Equity)
	}
	if c.Engine.RiskPerTradePct <= 0 {
		return models.Snapshot{}, fmt.Errorf("%w: risk %v", ErrInvalidSnapshot, c.Engine.RiskPerTradePct)
	}
	interval := string(drepo.NormalizeInterval(c.Engine.Interval))
	return models.Snapshot{
		Symbols:         symbols,
		Equity:          c.Engine.Equity,
		RiskPerTradePct: c.Engine.RiskPerTradePct,
		Period:          c.Engine.Period,
		Interval:        interval,
		Timeframe:       interval,
		AutoTrade:       c.Engine.AutoTrade,
	}, nil
}
