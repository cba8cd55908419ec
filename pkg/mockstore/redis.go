package mockstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig describes how to reach the Redis server holding overrides.
type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"` // ConnectionURL in the format "redis://:password@localhost:6379/0".
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	ScanBatchSize  int64         `env:"REDIS_SCAN_BATCH_SIZE" envDefault:"500"`
}

// ConnectRedis establishes a connection to Redis, retrying RetryAttempts times
// with RetryInterval between attempts.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	attempts := max(cfg.RetryAttempts, 1)
	for i := range attempts {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrRedisNotReady
}

// RedisClient is the subset of go-redis commands the backend issues.
// *redis.Client, *redis.ClusterClient and redis.UniversalClient satisfy it.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// RedisBackend stores each override as a JSON-encoded string value.
type RedisBackend struct {
	db            RedisClient
	scanBatchSize int64
}

// NewRedisBackend wraps an existing client. A non-positive batch size defaults to 500.
func NewRedisBackend(client RedisClient, scanBatchSize int64) *RedisBackend {
	if scanBatchSize <= 0 {
		scanBatchSize = 500
	}
	return &RedisBackend{db: client, scanBatchSize: scanBatchSize}
}

func (r *RedisBackend) Load(ctx context.Context, key string) (Entry, bool, error) {
	raw, err := r.db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}

	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, false, errors.Join(ErrCorruptedEntry, fmt.Errorf("redis key %s: %w", key, err))
	}
	return e, true, nil
}

func (r *RedisBackend) Store(ctx context.Context, key string, entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return r.db.Set(ctx, key, raw, 0).Err()
}

func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	return r.db.Del(ctx, key).Err()
}

// DeleteAll walks the prefix with SCAN so large databases are never blocked.
func (r *RedisBackend) DeleteAll(ctx context.Context, prefix string) error {
	var cursor uint64
	for {
		batch, next, err := r.db.Scan(ctx, cursor, prefix+"*", r.scanBatchSize).Result()
		if err != nil {
			return err
		}
		if len(batch) > 0 {
			if err := r.db.Del(ctx, batch...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (r *RedisBackend) Ping(ctx context.Context) error {
	return r.db.Ping(ctx).Err()
}

func (r *RedisBackend) Close() error {
	return r.db.Close()
}
