// Package app wires configuration into the shared services used by both the
// HTTP server and the console.
package app

import (
	"fmt"
	"time"

	"customer-chatbot/config"
	"customer-chatbot/internal/database"
	"customer-chatbot/internal/middleware"
	"customer-chatbot/internal/services"
	"customer-chatbot/internal/speech/vosk"
	"customer-chatbot/pkg/logger"

	"go.uber.org/zap"
)

// Setup initializes logging, the store, the intent table, the optional Redis
// cache and the voice worker. The returned function releases them.
func Setup(cfg *config.Config, quietLog bool) (func(), error) {
	err := logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
		Quiet:      quietLog,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if _, err := database.Connect(cfg.DBPath); err != nil {
		return nil, err
	}
	cleanup := func() {
		if database.RedisClient != nil {
			database.RedisClient.Close()
		}
		database.Close()
		logger.Sync()
	}

	if err := services.SeedProducts(services.DefaultProducts()); err != nil {
		cleanup()
		return nil, fmt.Errorf("seed products: %w", err)
	}

	table, err := services.LoadIntents(cfg.IntentsFile)
	if err != nil {
		cleanup()
		return nil, err
	}
	logger.Log.Info("Intent table loaded", zap.Int("rules", len(table.Rules)), zap.String("default", string(table.Default)))

	if err := database.ConnectRedis(cfg.RedisFullAddr(), cfg.RedisPassword); err != nil {
		cleanup()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if cfg.ProductCacheTTL > 0 {
		services.ProductCacheDuration = cfg.ProductCacheTTL
	}

	if cfg.SpeechServerURL != "" {
		services.VoiceMgr = services.NewVoiceWorker(vosk.NewVoskDriver(cfg.SpeechServerURL, cfg.SpeechSampleRate), cfg.SpeechSampleRate, cfg.VoiceTimeout)
		logger.Log.Info("Voice input enabled", zap.String("speech_server", cfg.SpeechServerURL))
	} else {
		services.VoiceMgr = services.NewVoiceWorker(nil, cfg.SpeechSampleRate, cfg.VoiceTimeout)
		logger.Log.Info("Voice input disabled, SPEECH_SERVER_URL is not set")
	}

	return cleanup, nil
}

// NewLimiter returns the chat and voice rate limiter, or nil when Redis is
// not configured or the limit is disabled.
func NewLimiter(cfg *config.Config) (middleware.Limiter, error) {
	if database.RedisClient == nil || cfg.RateLimitPerMinute <= 0 {
		return nil, nil
	}
	limiter, err := services.NewFixedWindowLimiter(database.RedisClient, "chatbot:ratelimit", cfg.RateLimitPerMinute, time.Minute)
	if err != nil {
		return nil, err
	}
	return limiter, nil
}
