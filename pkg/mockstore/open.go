package mockstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/proteus/pkg/logger"
)

// Driver names a storage backend.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverFile     Driver = "file"
	DriverRedis    Driver = "redis"
	DriverPostgres Driver = "postgres"
	DriverMongo    Driver = "mongo"
)

// ParseDriver validates a driver name. "pg" and "mongodb" are accepted aliases.
func ParseDriver(name string) (Driver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "memory", "mem":
		return DriverMemory, nil
	case "file", "":
		return DriverFile, nil
	case "redis":
		return DriverRedis, nil
	case "postgres", "pg":
		return DriverPostgres, nil
	case "mongo", "mongodb":
		return DriverMongo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, name)
	}
}

// Config selects and configures the override storage backend from the environment.
type Config struct {
	Driver    string `env:"PROTEUS_STORAGE" envDefault:"file"`
	FilePath  string `env:"PROTEUS_STORAGE_PATH" envDefault:".proteus/overrides.json"`
	KeyPrefix string `env:"PROTEUS_KEY_PREFIX" envDefault:"proteus_mock_"`

	Redis    RedisConfig
	Postgres PostgresConfig
	Mongo    MongoConfig
}

// Open connects the configured backend and wraps it into a Store.
// Postgres migrations are applied before the store is returned.
func Open(ctx context.Context, cfg Config, log *slog.Logger) (*Store, error) {
	start := time.Now()
	driver, err := ParseDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}
	log = logger.OrDiscard(log)

	var backend Backend
	switch driver {
	case DriverMemory:
		backend = NewMemoryBackend()
	case DriverFile:
		fb, err := NewFileBackend(cfg.FilePath)
		if err != nil {
			return nil, err
		}
		backend = fb
	case DriverRedis:
		client, err := ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		backend = NewRedisBackend(client, cfg.Redis.ScanBatchSize)
	case DriverPostgres:
		pool, err := ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		if err := MigratePostgres(ctx, pool, cfg.Postgres, log); err != nil {
			pool.Close()
			return nil, err
		}
		backend = NewPostgresBackend(pool)
	case DriverMongo:
		client, err := ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		backend = NewMongoBackend(client, cfg.Mongo.Database, cfg.Mongo.Collection)
	}

	log.InfoContext(ctx, "override storage opened",
		logger.Driver(string(driver)),
		logger.Duration(time.Since(start)),
	)
	return New(backend, WithKeyPrefix(cfg.KeyPrefix)), nil
}
