package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/infra/mail"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "")
	t.Setenv("EVENT_BUS", "")
	t.Setenv("RATE_LIMIT_BACKEND", "")
	t.Setenv("TRUSTED_PROXIES", "")
	t.Setenv("WEBHOOK_RATE_LIMIT_PER_MINUTE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.Equal(t, mail.ProviderSimulated, cfg.Mail.Provider)
	assert.Equal(t, 100*time.Millisecond, cfg.SimulatedDelay)
	assert.Equal(t, 10, cfg.QueueBatchSize)
	assert.Equal(t, "none", cfg.EventBus)
	assert.Equal(t, "memory", cfg.RateLimitBackend)
	assert.Equal(t, int64(1<<20), cfg.MaxRequestBody)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, 1200, cfg.WebhookRateLimitPerMinute)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoadTrustedProxiesAndWebhookLimit(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "")
	t.Setenv("EVENT_BUS", "")
	t.Setenv("RATE_LIMIT_BACKEND", "")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.10")
	t.Setenv("WEBHOOK_RATE_LIMIT_PER_MINUTE", "300")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.10"}, cfg.TrustedProxies)
	assert.Equal(t, 300, cfg.WebhookRateLimitPerMinute)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "Brevo")
	t.Setenv("SMTP_SECURE", "true")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("EMAIL_QUEUE_POLL_INTERVAL", "30s")
	t.Setenv("EVENT_BUS", "kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, mail.ProviderBrevo, cfg.Mail.Provider)
	require.NotNil(t, cfg.Mail.Secure)
	assert.True(t, *cfg.Mail.Secure)
	assert.Equal(t, 2525, cfg.Mail.Port)
	assert.Equal(t, 30*time.Second, cfg.QueuePollInterval)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoadRejectsUnknownValues(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "sendgrid")
	_, err := Load()
	assert.ErrorContains(t, err, "EMAIL_PROVIDER")

	t.Setenv("EMAIL_PROVIDER", "smtp")
	t.Setenv("EVENT_BUS", "nats")
	_, err = Load()
	assert.ErrorContains(t, err, "EVENT_BUS")

	t.Setenv("EVENT_BUS", "none")
	t.Setenv("RATE_LIMIT_BACKEND", "memcached")
	_, err = Load()
	assert.ErrorContains(t, err, "RATE_LIMIT_BACKEND")
}
