package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "chatbot.db", cfg.DBPath)
	assert.Equal(t, 16000, cfg.SpeechSampleRate)
	assert.Equal(t, 30*time.Second, cfg.VoiceTimeout)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "", cfg.RedisFullAddr())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("VOICE_TIMEOUT", "5s")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("LOG_COMPRESS", "false")

	cfg, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "cache:6380", cfg.RedisFullAddr())
	assert.Equal(t, 5*time.Second, cfg.VoiceTimeout)
	assert.Equal(t, 60, cfg.RateLimitPerMinute) // invalid value keeps the default
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowOrigins)
	assert.False(t, cfg.LogCompress)
}
