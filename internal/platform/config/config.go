package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	Environment   string
	LogFormat     string
	JWTSigningKey string
	DatabaseURL   string
	Redis         RedisConfig
	Kafka         KafkaConfig
	Disclosure    DisclosureConfig
}

// RedisConfig configures the reveal cache connection. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	RevealTTL    time.Duration
}

// KafkaConfig configures the outbox relay. No brokers disables it.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	PollInterval time.Duration
	BatchSize    int
}

// DisclosureConfig holds account defaults and tier allotments.
type DisclosureConfig struct {
	DailyLimit       int
	MonthlyLimit     int
	GrantTTL         time.Duration
	DefaultAllotment int
	TierAllotments   map[string]int
}

// FromEnv builds a Server config from environment variables so main stays lean.
// Malformed numbers and durations fall back to their defaults with a warning.
func FromEnv(logger *slog.Logger) Server {
	env := envReader{logger: logger}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:          env.string("SKILLONCALL_ADDR", ":8080"),
		Environment:   env.string("ENVIRONMENT", "development"),
		LogFormat:     env.string("LOG_FORMAT", "text"),
		JWTSigningKey: jwtSigningKey,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     env.int("REDIS_POOL_SIZE", 10),
			MinIdleConns: env.int("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  env.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  env.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: env.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			RevealTTL:    env.duration("REVEAL_CACHE_TTL", 24*time.Hour),
		},
		Kafka: KafkaConfig{
			Brokers:      env.list("KAFKA_BROKERS"),
			Topic:        env.string("DISCLOSURE_TOPIC", "disclosure.events"),
			PollInterval: env.duration("OUTBOX_POLL_INTERVAL", time.Second),
			BatchSize:    env.int("OUTBOX_BATCH_SIZE", 100),
		},
		Disclosure: DisclosureConfig{
			DailyLimit:       env.int("DISCLOSURE_DAILY_LIMIT", 10),
			MonthlyLimit:     env.int("DISCLOSURE_MONTHLY_LIMIT", 100),
			GrantTTL:         env.duration("DISCLOSURE_GRANT_TTL", 30*24*time.Hour),
			DefaultAllotment: env.int("DISCLOSURE_DEFAULT_CREDITS", 5),
			TierAllotments: map[string]int{
				"basic":      env.int("DISCLOSURE_BASIC_CREDITS", 50),
				"pro":        env.int("DISCLOSURE_PRO_CREDITS", 200),
				"enterprise": env.int("DISCLOSURE_ENTERPRISE_CREDITS", 500),
			},
		},
	}
}

// IsProduction reports whether the process runs in production.
func (s Server) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

type envReader struct {
	logger *slog.Logger
}

func (e envReader) string(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (e envReader) int(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		e.warn(key, raw, fallback)
		return fallback
	}
	return v
}

func (e envReader) duration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		e.warn(key, raw, fallback)
		return fallback
	}
	return v
}

func (e envReader) list(key string) []string {
	var out []string
	for item := range strings.SplitSeq(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (e envReader) warn(key, raw string, fallback any) {
	if e.logger != nil {
		e.logger.Warn("invalid config value, using default", "key", key, "value", raw, "default", fallback)
	}
}
