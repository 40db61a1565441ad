package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 2 * time.Second

// Config holds the settings of the rate-limit store connection.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds dialing and every command. The limiter fails open, so a
	// slow Redis must not hold up privileged requests for long.
	Timeout time.Duration
}

func (cfg Config) timeout() time.Duration {
	if cfg.Timeout <= 0 {
		return defaultTimeout
	}
	return cfg.Timeout
}

func clientOptions(cfg Config) *redis.Options {
	t := cfg.timeout()
	return &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  t,
		ReadTimeout:  t,
		WriteTimeout: t,
		// A rejected INCR is retried once at most; the request is waiting on it.
		MaxRetries: 1,
	}
}

// Connect opens the client and pings it once.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis connect: empty address")
	}

	client := redis.NewClient(clientOptions(cfg))

	pingCtx, cancel := context.WithTimeout(ctx, cfg.timeout())
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}

// Pinger returns a readiness check for client.
func Pinger(client redis.Cmdable) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
