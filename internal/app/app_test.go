package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"customer-chatbot/config"
	"customer-chatbot/internal/database"
	"customer-chatbot/internal/models"
	"customer-chatbot/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		DBPath:             filepath.Join(dir, "data", "chatbot.db"),
		LogLevel:           "INFO",
		LogFilename:        filepath.Join(dir, "app.log"),
		ProductCacheTTL:    time.Minute,
		RateLimitPerMinute: 10,
		SpeechSampleRate:   16000,
		VoiceTimeout:       time.Second,
	}
}

func TestSetup(t *testing.T) {
	cfg := testConfig(t)

	cleanup, err := Setup(cfg, true)
	assert.NoError(t, err)
	defer cleanup()

	var count int64
	database.DB.Model(&models.Product{}).Count(&count)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, models.IntentOrderStatus, services.ClassifyIntent("my order"))
	assert.False(t, services.VoiceMgr.Available())
	assert.Equal(t, time.Minute, services.ProductCacheDuration)

	limiter, err := NewLimiter(cfg)
	assert.NoError(t, err)
	assert.Nil(t, limiter, "no limiter without redis")
}

func TestSetupWithRedisAndSpeech(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.RedisAddr = mr.Host()
	cfg.RedisPort = mr.Port()
	cfg.SpeechServerURL = "ws://127.0.0.1:2700"

	cleanup, err := Setup(cfg, true)
	assert.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, database.RedisClient)
	assert.True(t, services.VoiceMgr.Available())

	limiter, err := NewLimiter(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, limiter)
}

func TestSetupRejectsBadIntents(t *testing.T) {
	cfg := testConfig(t)
	cfg.IntentsFile = filepath.Join(t.TempDir(), "intents.yaml")
	assert.NoError(t, os.WriteFile(cfg.IntentsFile, []byte("default: greetings\nrules: []\n"), 0644))

	_, err := Setup(cfg, true)
	assert.Error(t, err)
}
