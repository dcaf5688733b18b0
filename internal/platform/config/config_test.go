package config

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"SKILLONCALL_ADDR", "DISCLOSURE_DAILY_LIMIT", "DISCLOSURE_MONTHLY_LIMIT", "DISCLOSURE_GRANT_TTL", "KAFKA_BROKERS", "REDIS_URL"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv(nil)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 10, cfg.Disclosure.DailyLimit)
	assert.Equal(t, 100, cfg.Disclosure.MonthlyLimit)
	assert.Equal(t, 30*24*time.Hour, cfg.Disclosure.GrantTTL)
	assert.Equal(t, 5, cfg.Disclosure.DefaultAllotment)
	assert.Equal(t, map[string]int{"basic": 50, "pro": 200, "enterprise": 500}, cfg.Disclosure.TierAllotments)
	assert.Equal(t, "disclosure.events", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DISCLOSURE_DAILY_LIMIT", "3")
	t.Setenv("DISCLOSURE_GRANT_TTL", "48h")
	t.Setenv("DISCLOSURE_PRO_CREDITS", "250")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("ENVIRONMENT", "Production")

	cfg := FromEnv(nil)

	assert.Equal(t, 3, cfg.Disclosure.DailyLimit)
	assert.Equal(t, 48*time.Hour, cfg.Disclosure.GrantTTL)
	assert.Equal(t, 250, cfg.Disclosure.TierAllotments["pro"])
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.IsProduction())
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DISCLOSURE_MONTHLY_LIMIT", "lots")
	t.Setenv("DISCLOSURE_DAILY_LIMIT", "-1")
	t.Setenv("REVEAL_CACHE_TTL", "forever")

	var buf bytes.Buffer
	cfg := FromEnv(slog.New(slog.NewTextHandler(&buf, nil)))

	assert.Equal(t, 100, cfg.Disclosure.MonthlyLimit)
	assert.Equal(t, 10, cfg.Disclosure.DailyLimit)
	assert.Equal(t, 24*time.Hour, cfg.Redis.RevealTTL)
	assert.Contains(t, buf.String(), "DISCLOSURE_MONTHLY_LIMIT")
	assert.Contains(t, buf.String(), "REVEAL_CACHE_TTL")
}
