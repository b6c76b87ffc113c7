package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultRedisHash is the hash holding all setting fields
const DefaultRedisHash = "glimpse:settings"

const redisDialTimeout = 5 * time.Second

// RedisStore keeps settings as fields of one Redis hash
type RedisStore struct {
	client goredis.UniversalClient
	hash   string
}

// NewRedisStore wraps an existing client. An empty hash uses DefaultRedisHash.
func NewRedisStore(client goredis.UniversalClient, hash string) *RedisStore {
	if hash == "" {
		hash = DefaultRedisHash
	}
	return &RedisStore{client: client, hash: hash}
}

// ConnectRedis parses a redis:// URL, pings the server and returns a store
func ConnectRedis(ctx context.Context, redisURL string) (*RedisStore, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis URL is required")
	}
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = redisDialTimeout
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStore(client, ""), nil
}

// Get implements Store
func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.HGet(ctx, r.hash, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

// Set implements Store
func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := r.client.HSet(ctx, r.hash, key, value).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete implements Store
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.HDel(ctx, r.hash, key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

// Close implements Store
func (r *RedisStore) Close() error {
	return r.client.Close()
}
