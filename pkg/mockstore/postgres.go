package mockstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrymomot/proteus/pkg/feature"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PostgresConfig describes the Postgres database holding overrides.
type PostgresConfig struct {
	ConnectionString string        `env:"PG_CONN_URL"`
	MaxOpenConns     int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"4"`
	MaxIdleConns     int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"1"`
	MaxConnIdleTime  time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	RetryAttempts    int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval    time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"2s"`
	MigrationsTable  string        `env:"PG_MIGRATIONS_TABLE" envDefault:"proteus_migrations"`
}

// ConnectPostgres opens a pgx pool with linear backoff between attempts.
func ConnectPostgres(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	if cfg.MaxOpenConns > 0 {
		connConfig.MaxConns = cfg.MaxOpenConns
	}
	connConfig.MinConns = cfg.MaxIdleConns
	connConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	attempts := max(cfg.RetryAttempts, 1)
	for i := range attempts {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}

	return nil, ErrFailedToOpenDBConnection
}

// MigratePostgres creates the mock_configs table using the embedded goose migrations.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool, cfg PostgresConfig, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close migration connection", "error", err)
		}
	}(db)

	goose.SetBaseFS(migrations)
	goose.SetLogger(&gooseLogger{log: log})
	if cfg.MigrationsTable != "" {
		goose.SetTableName(cfg.MigrationsTable)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return nil
}

// gooseLogger routes goose's printf-style output through slog.
type gooseLogger struct {
	log *slog.Logger
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// PostgresBackend stores overrides in the mock_configs table.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

func NewPostgresBackend(pool *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{pool: pool}
}

func (p *PostgresBackend) Load(ctx context.Context, key string) (Entry, bool, error) {
	var typ, value string
	err := p.pool.QueryRow(ctx,
		`SELECT value_type, value FROM mock_configs WHERE key = $1`, key,
	).Scan(&typ, &value)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}

	vt, err := feature.ParseValueType(typ)
	if err != nil {
		return Entry{}, false, errors.Join(ErrCorruptedEntry, err)
	}
	return Entry{Type: vt, Value: value}, true, nil
}

func (p *PostgresBackend) Store(ctx context.Context, key string, entry Entry) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO mock_configs (key, value_type, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (key) DO UPDATE
		SET value_type = EXCLUDED.value_type, value = EXCLUDED.value, updated_at = now()`,
		key, entry.Type.String(), entry.Value,
	)
	return err
}

func (p *PostgresBackend) Delete(ctx context.Context, key string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM mock_configs WHERE key = $1`, key)
	return err
}

func (p *PostgresBackend) DeleteAll(ctx context.Context, prefix string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM mock_configs WHERE starts_with(key, $1)`, prefix)
	return err
}

func (p *PostgresBackend) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresBackend) Close() error {
	p.pool.Close()
	return nil
}
