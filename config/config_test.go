package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, "/api/v1", cfg.Server.APIPrefix)
	assert.Equal(t, 5, cfg.Server.MaxUploadFiles)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, 10*time.Second, cfg.WhatsApp.Timeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("WHATSAPP_TIMEOUT", "3s")
	t.Setenv("MAX_UPLOAD_FILES", "not-a-number")

	cfg := LoadEnv()

	assert.Equal(t, "8088", cfg.Server.HTTPPort)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 3*time.Second, cfg.WhatsApp.Timeout)
	assert.Equal(t, 5, cfg.Server.MaxUploadFiles, "invalid ints fall back to the default")
}
