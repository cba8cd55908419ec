package proteus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/proteus/pkg/feature"
	"github.com/dmitrymomot/proteus/pkg/featurebook"
	"github.com/dmitrymomot/proteus/pkg/logger"
	"github.com/dmitrymomot/proteus/pkg/mockstore"
	"github.com/dmitrymomot/proteus/pkg/remote"
)

const (
	RemoteMemory   = "memory"
	RemoteFirebase = "firebase"

	CatalogFile   = "file"
	CatalogS3     = "s3"
	CatalogMemory = "memory"
)

// Config describes a complete Proteus setup loaded from the environment.
type Config struct {
	Environment  string `env:"PROTEUS_ENV" envDefault:"development"`
	InstanceID   string `env:"PROTEUS_INSTANCE_ID"`
	Remote       string `env:"PROTEUS_REMOTE" envDefault:"memory"`
	DefaultOwner string `env:"PROTEUS_DEFAULT_OWNER" envDefault:"firebase"`

	CatalogSource string `env:"PROTEUS_CATALOG_SOURCE" envDefault:"file"`
	CatalogPath   string `env:"PROTEUS_CATALOG_PATH" envDefault:"features.json"`
	ConsoleAddr   string `env:"PROTEUS_CONSOLE_ADDR" envDefault:":8089"`

	Storage  mockstore.Config
	Catalog  featurebook.S3Config
	Firebase remote.FirebaseConfig
	Log      logger.Config
}

// Open builds every collaborator described by cfg and wires them with New.
// The Firebase template is fetched once before Open returns.
// Options passed by the caller are applied last and win.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Proteus, error) {
	log := logger.New(
		logger.WithEnvironment(cfg.Environment, "proteus"),
		logger.WithConfig(cfg.Log),
		logger.WithContextExtractors(remote.LoggerExtractor()),
	)

	// Storage passed by the caller wins; the configured driver is not dialed.
	var given options
	for _, opt := range opts {
		opt(&given)
	}

	var store *mockstore.Store
	if given.storage == nil {
		s, err := mockstore.Open(ctx, cfg.Storage, log)
		if err != nil {
			return nil, err
		}
		store = s
	}
	closeStore := func() error {
		if store == nil {
			return nil
		}
		return store.Close()
	}

	source, err := openCatalog(ctx, cfg)
	if err != nil {
		return nil, errors.Join(err, closeStore())
	}

	factory, err := openRemote(ctx, cfg, log)
	if err != nil {
		return nil, errors.Join(err, closeStore())
	}

	base := []Option{
		WithFeatureBookSource(source),
		WithRemoteFactory(factory),
		WithLogger(log),
		WithInstanceID(cfg.InstanceID),
		WithEnvironment(cfg.Environment),
	}
	if store != nil {
		base = append(base, WithStorage(store))
	}
	p, err := New(append(base, opts...)...)
	if err != nil {
		return nil, errors.Join(err, closeStore())
	}
	return p, nil
}

func openCatalog(ctx context.Context, cfg Config) (featurebook.Source, error) {
	owner := featurebook.WithDefaultOwner(cfg.DefaultOwner)

	switch strings.ToLower(cfg.CatalogSource) {
	case CatalogFile, "":
		return featurebook.NewFileSource(cfg.CatalogPath, owner)
	case CatalogS3:
		return featurebook.NewS3Source(ctx, cfg.Catalog, owner)
	case CatalogMemory:
		return featurebook.NewMemorySource(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCatalogSource, cfg.CatalogSource)
	}
}

func openRemote(ctx context.Context, cfg Config, log *slog.Logger) (*remote.Factory, error) {
	var provider feature.Provider

	switch strings.ToLower(cfg.Remote) {
	case RemoteMemory, "":
		mp, err := remote.NewMemoryProvider()
		if err != nil {
			return nil, err
		}
		provider = mp
	case RemoteFirebase:
		fp, err := remote.NewFirebaseProvider(ctx, cfg.Firebase, remote.WithFirebaseLogger(log))
		if err != nil {
			return nil, err
		}
		if err := fp.Fetch(ctx); err != nil {
			return nil, err
		}
		provider = fp
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRemote, cfg.Remote)
	}

	return remote.NewFactory(
		remote.WithProvider(cfg.DefaultOwner, strings.ToLower(cfg.Remote), provider),
		remote.WithDefaultOwner(cfg.DefaultOwner),
	), nil
}
