// Package redis provides the Redis-backed pieces of the API: the connection
// helper and the sliding-window rate limiter that admission control runs on.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultConnectTimeout = 5 * time.Second

// Config carries the connection settings the rate limiter deployment needs.
type Config struct {
	Addr     string
	Password string
	DB       int
	// PoolSize bounds concurrent connections. The limiter issues one
	// pipeline per request, so size this near the server's expected
	// request concurrency. Zero keeps the client default.
	PoolSize int
	// Timeout bounds the initial connectivity check.
	Timeout time.Duration
}

// Connect builds a client for the rate limiter store and verifies it is
// reachable before the server starts accepting traffic.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}
