package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBPath      string
	IntentsFile string

	RedisAddr       string
	RedisPort       string
	RedisPassword   string
	ProductCacheTTL time.Duration

	AllowOrigins       []string
	RateLimitPerMinute int

	// Speech server (Vosk-compatible WebSocket endpoint)
	SpeechServerURL  string
	SpeechSampleRate int
	VoiceTimeout     time.Duration
	VoiceInboxDir    string

	// Log configuration
	LogLevel      string
	LogFilename   string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
	LogCompress   bool
}

// RedisFullAddr returns host:port, or "" when Redis is not configured.
func (c *Config) RedisFullAddr() string {
	if c.RedisAddr == "" {
		return ""
	}
	if c.RedisPort == "" {
		return c.RedisAddr
	}
	return c.RedisAddr + ":" + c.RedisPort
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		// Ignore error if .env file is not found
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DBPath:      getEnv("DB_PATH", "chatbot.db"),
		IntentsFile: os.Getenv("INTENTS_FILE"),

		RedisAddr:       os.Getenv("REDIS_HOST"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		ProductCacheTTL: getEnvAsDuration("PRODUCT_CACHE_TTL", time.Hour),

		AllowOrigins:       getEnvAsList("CORS_ALLOW_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),

		SpeechServerURL:  os.Getenv("SPEECH_SERVER_URL"),
		SpeechSampleRate: getEnvAsInt("SPEECH_SAMPLE_RATE", 16000),
		VoiceTimeout:     getEnvAsDuration("VOICE_TIMEOUT", 30*time.Second),
		VoiceInboxDir:    os.Getenv("VOICE_INBOX_DIR"),

		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		LogFilename:   getEnv("LOG_FILENAME", "logs/app.log"),
		LogMaxSize:    getEnvAsInt("LOG_MAX_SIZE", 100),
		LogMaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
		LogMaxAge:     getEnvAsInt("LOG_MAX_AGE", 28),
		LogCompress:   getEnvAsBool("LOG_COMPRESS", true),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value, dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
