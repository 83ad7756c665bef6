package database

import (
	"context"

	"github.com/go-redis/redis/v8"
)

var (
	// RedisClient stays nil when no Redis address is configured; callers
	// must treat caching and rate limiting as disabled in that case.
	RedisClient *redis.Client
	Ctx         = context.Background()
)

func ConnectRedis(addr, password string) error {
	if addr == "" {
		RedisClient = nil
		return nil
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0, // use default DB
	})

	_, err := RedisClient.Ping(Ctx).Result()
	return err
}
