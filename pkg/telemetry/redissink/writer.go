package redissink

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Writer persists one batch of aggregated values into a hash.
type Writer interface {
	Write(ctx context.Context, key string, incr map[string]float64, set map[string]float64) error
}

// RedisWriter writes batches with a single pipeline.
type RedisWriter struct {
	client redis.Cmdable
}

// NewRedisWriter wraps a go-redis client.
func NewRedisWriter(client redis.Cmdable) *RedisWriter {
	return &RedisWriter{client: client}
}

// Write implements Writer.
func (w *RedisWriter) Write(ctx context.Context, key string, incr map[string]float64, set map[string]float64) error {
	_, err := w.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for field, v := range incr {
			p.HIncrByFloat(ctx, key, field, v)
		}
		if len(set) > 0 {
			values := make([]any, 0, len(set)*2)
			for field, v := range set {
				values = append(values, field, v)
			}
			p.HSet(ctx, key, values...)
		}
		return nil
	})
	return err
}

// Config describes the Redis connection used by the sink.
type Config struct {
	URL            string        `env:"TELEMETRY_REDIS_URL"`
	Key            string        `env:"TELEMETRY_REDIS_KEY" envDefault:"reqkit:telemetry"`
	ConnectTimeout time.Duration `env:"TELEMETRY_REDIS_CONNECT_TIMEOUT" envDefault:"5s"`
	FlushInterval  time.Duration `env:"TELEMETRY_REDIS_FLUSH_INTERVAL" envDefault:"10s"`
}

// Connect parses cfg.URL, creates a client and verifies it with PING.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Join(ErrRedisNotReady, err)
	}
	return client, nil
}
