package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// RedisConfig configures the Redis-backed store. Fields map to environment
// variables for twelve-factor deployments; load with LoadRedisConfig.
type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	KeyPrefix      string        `env:"REVOCATION_KEY_PREFIX" envDefault:"revoked:"`
	EntryTTL       time.Duration `env:"REVOCATION_ENTRY_TTL" envDefault:"0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
}

// LoadRedisConfig reads RedisConfig from the environment.
func LoadRedisConfig() (RedisConfig, error) {
	var cfg RedisConfig
	if err := env.Parse(&cfg); err != nil {
		return RedisConfig{}, fmt.Errorf("revocation: parse redis config: %w", err)
	}
	return cfg, nil
}

// RedisClient is the subset of the go-redis client the store uses.
// Satisfied by *redis.Client and *redis.ClusterClient.
type RedisClient interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// RedisStore is a Store backed by Redis, letting multiple processes share
// one revocation list. Concurrent Exists lookups for the same key are
// collapsed into a single round trip.
type RedisStore struct {
	client RedisClient
	prefix string
	ttl    time.Duration
	group  singleflight.Group
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix namespaces the store's keys. Default "revoked:".
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// WithEntryTTL expires inserted keys after d. Useful when revoked tokens
// have a bounded lifetime anyway: the entry only needs to outlive the
// token's own expiry. Zero keeps entries forever.
func WithEntryTTL(d time.Duration) RedisOption {
	return func(s *RedisStore) { s.ttl = d }
}

// NewRedisStore creates a Store on top of an existing Redis client.
func NewRedisStore(client RedisClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: "revoked:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Exists reports whether the key is revoked. Concurrent callers asking
// about the same key share one Redis round trip.
func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	v, err, _ := s.group.Do(key, func() (any, error) {
		n, err := s.client.Exists(ctx, s.prefix+key).Result()
		if err != nil {
			return false, fmt.Errorf("revocation: redis exists: %w", err)
		}
		return n > 0, nil
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// Insert marks the key revoked.
func (s *RedisStore) Insert(ctx context.Context, key string) error {
	if err := s.client.Set(ctx, s.prefix+key, "1", s.ttl).Err(); err != nil {
		return fmt.Errorf("revocation: redis set: %w", err)
	}
	return nil
}

// Delete clears the key. Idempotent - no error on miss.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("revocation: redis del: %w", err)
	}
	return nil
}

// Connect creates a Redis client from cfg, retrying the initial ping so
// transient startup races (Redis container not up yet) don't fail the
// process.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRedisURL, err)
	}

	client := redis.NewClient(opts)
	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		pingCtx := ctx
		var cancel context.CancelFunc
		if cfg.ConnectTimeout > 0 {
			pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		}
		err = client.Ping(pingCtx).Err()
		if cancel != nil {
			cancel()
		}
		if err == nil {
			return client, nil
		}
		if i < attempts-1 {
			select {
			case <-time.After(cfg.RetryInterval):
			case <-ctx.Done():
				_ = client.Close()
				return nil, ctx.Err()
			}
		}
	}
	_ = client.Close()
	return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
}

// Healthcheck returns a probe suitable for readiness endpoints.
func Healthcheck(client RedisClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Ensure RedisStore implements Store and *redis.Client satisfies RedisClient
var (
	_ Store       = (*RedisStore)(nil)
	_ RedisClient = (*redis.Client)(nil)
)
