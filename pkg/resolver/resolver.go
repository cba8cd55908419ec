package resolver

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/proteus/pkg/feature"
	"github.com/dmitrymomot/proteus/pkg/logger"
)

// Source identifies the layer that produced a value.
type Source uint8

const (
	SourceOverride Source = iota + 1
	SourceRemote
)

func (s Source) String() string {
	switch s {
	case SourceOverride:
		return "override"
	case SourceRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Overrides is the local layer: explicit presence lookups where ok == false
// means "no usable override".
type Overrides interface {
	LookupBoolean(ctx context.Context, f feature.Feature) (bool, bool, error)
	LookupString(ctx context.Context, f feature.Feature) (string, bool, error)
	LookupLong(ctx context.Context, f feature.Feature) (int64, bool, error)
	LookupDouble(ctx context.Context, f feature.Feature) (float64, bool, error)
	Lookup(ctx context.Context, f feature.Feature) (feature.Value, bool, error)
}

// Remotes selects the remote provider responsible for a feature.
type Remotes interface {
	ProviderFor(f feature.Feature) (feature.Provider, error)
}

// Resolver answers feature lookups with a local override when one exists and
// the remote provider otherwise. Nothing is cached: each call consults both layers.
type Resolver struct {
	overrides Overrides
	remotes   Remotes
	logger    *slog.Logger
}

type Option func(*Resolver)

func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger.OrDiscard(l)
	}
}

func New(overrides Overrides, remotes Remotes, opts ...Option) *Resolver {
	if overrides == nil || remotes == nil {
		panic("resolver: overrides and remotes are required")
	}
	r := &Resolver{
		overrides: overrides,
		remotes:   remotes,
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(logger.Component("resolver"))
	return r
}

func (r *Resolver) GetBoolean(ctx context.Context, f feature.Feature) (bool, error) {
	return resolve(ctx, r, f, r.overrides.LookupBoolean, feature.Provider.GetBoolean)
}

func (r *Resolver) GetString(ctx context.Context, f feature.Feature) (string, error) {
	return resolve(ctx, r, f, r.overrides.LookupString, feature.Provider.GetString)
}

func (r *Resolver) GetLong(ctx context.Context, f feature.Feature) (int64, error) {
	return resolve(ctx, r, f, r.overrides.LookupLong, feature.Provider.GetLong)
}

func (r *Resolver) GetDouble(ctx context.Context, f feature.Feature) (float64, error) {
	return resolve(ctx, r, f, r.overrides.LookupDouble, feature.Provider.GetDouble)
}

// Resolve returns the value in the feature's declared type and the layer that produced it.
func (r *Resolver) Resolve(ctx context.Context, f feature.Feature) (feature.Value, Source, error) {
	v, ok, err := r.overrides.Lookup(ctx, f)
	if err != nil {
		r.logger.WarnContext(ctx, "override lookup failed", logger.FeatureKey(f.Key()), logger.Error(err))
		return nil, 0, err
	}
	if ok {
		r.debug(ctx, f, SourceOverride, v)
		return v, SourceOverride, nil
	}

	p, err := r.remotes.ProviderFor(f)
	if err != nil {
		return nil, 0, err
	}
	v, err = feature.ValueOf(ctx, p, f)
	if err != nil {
		return nil, 0, err
	}
	r.debug(ctx, f, SourceRemote, v)
	return v, SourceRemote, nil
}

func (r *Resolver) debug(ctx context.Context, f feature.Feature, src Source, v feature.Value) {
	r.logger.DebugContext(ctx, "feature resolved",
		logger.FeatureKey(f.Key()),
		logger.Owner(f.Owner()),
		logger.Source(src),
		logger.Value(v),
	)
}

func resolve[T any](
	ctx context.Context,
	r *Resolver,
	f feature.Feature,
	lookup func(context.Context, feature.Feature) (T, bool, error),
	get func(feature.Provider, context.Context, feature.Feature) (T, error),
) (T, error) {
	v, ok, err := lookup(ctx, f)
	if err != nil {
		r.logger.WarnContext(ctx, "override lookup failed", logger.FeatureKey(f.Key()), logger.Error(err))
		return v, err
	}
	if ok {
		r.logger.DebugContext(ctx, "feature resolved",
			logger.FeatureKey(f.Key()), logger.Source(SourceOverride))
		return v, nil
	}

	p, err := r.remotes.ProviderFor(f)
	if err != nil {
		var zero T
		return zero, err
	}
	v, err = get(p, ctx, f)
	if err == nil {
		r.logger.DebugContext(ctx, "feature resolved",
			logger.FeatureKey(f.Key()), logger.Owner(f.Owner()), logger.Source(SourceRemote))
	}
	return v, err
}
