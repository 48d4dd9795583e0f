package config

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects for the counts cache and the checker lock.
// Callers treat a connection failure as degraded mode, not fatal.
func NewRedisClient(cfg *Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	opt.PoolSize = cfg.RedisPoolSize

	client := redis.NewClient(opt)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
