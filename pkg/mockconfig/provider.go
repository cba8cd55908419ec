package mockconfig

import (
	"context"
	"errors"

	"github.com/dmitrymomot/proteus/pkg/feature"
	"github.com/dmitrymomot/proteus/pkg/mockstore"
)

// Provider exposes stored overrides as typed lookups.
// An override is usable only when it exists and matches the requested variant;
// anything else is reported as absent (ok == false) rather than as an error.
type Provider struct {
	repo *Repository
}

func NewProvider(repo *Repository) *Provider {
	if repo == nil {
		panic("mockconfig: repository cannot be nil")
	}
	return &Provider{repo: repo}
}

func (p *Provider) LookupBoolean(ctx context.Context, f feature.Feature) (bool, bool, error) {
	v, ok, err := lookup[feature.BooleanValue](ctx, p.repo, f)
	return bool(v), ok, err
}

func (p *Provider) LookupString(ctx context.Context, f feature.Feature) (string, bool, error) {
	v, ok, err := lookup[feature.TextValue](ctx, p.repo, f)
	return string(v), ok, err
}

func (p *Provider) LookupLong(ctx context.Context, f feature.Feature) (int64, bool, error) {
	v, ok, err := lookup[feature.LongValue](ctx, p.repo, f)
	return int64(v), ok, err
}

func (p *Provider) LookupDouble(ctx context.Context, f feature.Feature) (float64, bool, error) {
	v, ok, err := lookup[feature.DoubleValue](ctx, p.repo, f)
	return float64(v), ok, err
}

// Lookup returns the override in its declared variant.
func (p *Provider) Lookup(ctx context.Context, f feature.Feature) (feature.Value, bool, error) {
	v, err := p.repo.GetMockedConfigValue(ctx, f)
	if errors.Is(err, mockstore.ErrTypeMismatch) {
		return nil, false, nil
	}
	if err != nil || v == nil {
		return nil, false, err
	}
	return v, true, nil
}

// GetBoolean implements feature.Provider; absent overrides yield ErrMockConfigUnavailable.
func (p *Provider) GetBoolean(ctx context.Context, f feature.Feature) (bool, error) {
	return must(p.LookupBoolean(ctx, f))
}

func (p *Provider) GetString(ctx context.Context, f feature.Feature) (string, error) {
	return must(p.LookupString(ctx, f))
}

func (p *Provider) GetLong(ctx context.Context, f feature.Feature) (int64, error) {
	return must(p.LookupLong(ctx, f))
}

func (p *Provider) GetDouble(ctx context.Context, f feature.Feature) (float64, error) {
	return must(p.LookupDouble(ctx, f))
}

func lookup[T feature.Value](ctx context.Context, repo *Repository, f feature.Feature) (T, bool, error) {
	var zero T
	v, err := repo.GetMockedConfigValue(ctx, f)
	if errors.Is(err, mockstore.ErrTypeMismatch) {
		return zero, false, nil
	}
	if err != nil || v == nil {
		return zero, false, err
	}
	t, ok := v.(T)
	return t, ok, nil
}

func must[T any](v T, ok bool, err error) (T, error) {
	if err != nil {
		return v, err
	}
	if !ok {
		var zero T
		return zero, ErrMockConfigUnavailable
	}
	return v, nil
}
