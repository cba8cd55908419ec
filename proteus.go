package proteus

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/proteus/pkg/feature"
	"github.com/dmitrymomot/proteus/pkg/featurebook"
	"github.com/dmitrymomot/proteus/pkg/featurenote"
	"github.com/dmitrymomot/proteus/pkg/logger"
	"github.com/dmitrymomot/proteus/pkg/mockconfig"
	"github.com/dmitrymomot/proteus/pkg/mockstore"
	"github.com/dmitrymomot/proteus/pkg/remote"
	"github.com/dmitrymomot/proteus/pkg/resolver"
)

// Proteus resolves features for an application: local overrides first, the
// remote provider of each feature otherwise.
type Proteus struct {
	storage  mockstore.Storage
	factory  *remote.Factory
	source   featurebook.Source
	resolver *resolver.Resolver
	book     *featurenote.Repository
	logger   *slog.Logger

	instanceID  string
	environment string
	closers     []io.Closer
}

// Option configures New.
type Option func(*options)

type options struct {
	storage     mockstore.Storage
	factory     *remote.Factory
	source      featurebook.Source
	logger      *slog.Logger
	instanceID  string
	environment string
	closers     []io.Closer
}

// WithStorage sets the override storage. Defaults to an in-memory store.
func WithStorage(s mockstore.Storage) Option {
	return func(o *options) { o.storage = s }
}

// WithRemoteFactory registers the remote providers. Required.
func WithRemoteFactory(f *remote.Factory) Option {
	return func(o *options) { o.factory = f }
}

// WithFeatureBookSource sets the catalog. Defaults to an empty catalog.
func WithFeatureBookSource(s featurebook.Source) Option {
	return func(o *options) { o.source = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithInstanceID fixes the id used for targeting and rollouts. Defaults to a random UUID.
func WithInstanceID(id string) Option {
	return func(o *options) { o.instanceID = id }
}

// WithEnvironment names the deployment environment seen by remote conditions.
func WithEnvironment(env string) Option {
	return func(o *options) { o.environment = env }
}

// WithCloser registers a resource released by Close.
func WithCloser(c io.Closer) Option {
	return func(o *options) {
		if c != nil {
			o.closers = append(o.closers, c)
		}
	}
}

// New wires the collaborators together. It fails with
// ErrRemoteFactoryNotRegistered when no remote factory is given.
func New(opts ...Option) (*Proteus, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.factory == nil {
		return nil, ErrRemoteFactoryNotRegistered
	}
	if o.storage == nil {
		o.storage = mockstore.NewMemory()
	}
	if o.source == nil {
		o.source = featurebook.NewMemorySource()
	}
	if o.instanceID == "" {
		o.instanceID = uuid.NewString()
	}
	log := logger.OrDiscard(o.logger)

	overrides := mockconfig.NewRepository(o.storage)
	p := &Proteus{
		storage:     o.storage,
		factory:     o.factory,
		source:      o.source,
		resolver:    resolver.New(mockconfig.NewProvider(overrides), o.factory, resolver.WithLogger(log)),
		book:        featurenote.NewRepository(o.source, overrides, o.factory, featurenote.WithLogger(log)),
		logger:      log,
		instanceID:  o.instanceID,
		environment: o.environment,
		closers:     o.closers,
	}
	if c, ok := o.storage.(io.Closer); ok {
		p.closers = append(p.closers, c)
	}

	log.Debug("proteus ready",
		logger.InstanceID(p.instanceID),
		slog.String("environment", p.environment),
		slog.Any("owners", o.factory.Owners()),
	)
	return p, nil
}

// MustNew is New that panics on error.
func MustNew(opts ...Option) *Proteus {
	p, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Proteus) GetBoolean(ctx context.Context, f feature.Feature) (bool, error) {
	return p.resolver.GetBoolean(p.scope(ctx), f)
}

func (p *Proteus) GetString(ctx context.Context, f feature.Feature) (string, error) {
	return p.resolver.GetString(p.scope(ctx), f)
}

func (p *Proteus) GetLong(ctx context.Context, f feature.Feature) (int64, error) {
	return p.resolver.GetLong(p.scope(ctx), f)
}

func (p *Proteus) GetDouble(ctx context.Context, f feature.Feature) (float64, error) {
	return p.resolver.GetDouble(p.scope(ctx), f)
}

// Resolve returns the value of f together with the layer that produced it.
func (p *Proteus) Resolve(ctx context.Context, f feature.Feature) (feature.Value, resolver.Source, error) {
	return p.resolver.Resolve(p.scope(ctx), f)
}

// Book returns the editor view over the catalog. Its remote reads carry the
// instance id and environment only when the caller's context does.
func (p *Proteus) Book() *featurenote.Repository { return p.book }

func (p *Proteus) Resolver() *resolver.Resolver { return p.resolver }
func (p *Proteus) Factory() *remote.Factory     { return p.factory }
func (p *Proteus) Storage() mockstore.Storage   { return p.storage }
func (p *Proteus) InstanceID() string           { return p.instanceID }
func (p *Proteus) Logger() *slog.Logger         { return p.logger }

// Scope adds the instance id and environment to ctx unless already present.
func (p *Proteus) Scope(ctx context.Context) context.Context {
	return p.scope(ctx)
}

func (p *Proteus) scope(ctx context.Context) context.Context {
	if remote.InstanceID(ctx) == "" {
		ctx = remote.WithInstanceID(ctx, p.instanceID)
	}
	if p.environment != "" && remote.Environment(ctx) == "" {
		ctx = remote.WithEnvironment(ctx, p.environment)
	}
	return ctx
}

// Close releases the storage and every registered closer.
func (p *Proteus) Close() error {
	var errs []error
	for _, c := range p.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
