package mockconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/proteus/pkg/feature"
	"github.com/dmitrymomot/proteus/pkg/mockstore"
)

// Repository reads overrides from storage as typed feature values.
type Repository struct {
	storage mockstore.Storage
}

func NewRepository(storage mockstore.Storage) *Repository {
	if storage == nil {
		panic("mockconfig: storage cannot be nil")
	}
	return &Repository{storage: storage}
}

// GetMockedConfigValue returns the override for f, or nil when none is stored.
// The storage getter is chosen by the feature's declared type; storage errors,
// including mockstore.ErrTypeMismatch, are returned unchanged.
func (r *Repository) GetMockedConfigValue(ctx context.Context, f feature.Feature) (feature.Value, error) {
	ok, err := r.storage.Contains(ctx, f.Key())
	if err != nil || !ok {
		return nil, err
	}

	switch f.Type() {
	case feature.TypeLong:
		v, err := r.storage.GetLong(ctx, f.Key())
		if err != nil {
			return nil, err
		}
		return feature.LongValue(v), nil
	case feature.TypeDouble:
		v, err := r.storage.GetDouble(ctx, f.Key())
		if err != nil {
			return nil, err
		}
		return feature.DoubleValue(v), nil
	case feature.TypeText:
		v, err := r.storage.GetString(ctx, f.Key())
		if err != nil {
			return nil, err
		}
		return feature.TextValue(v), nil
	case feature.TypeBoolean:
		v, err := r.storage.GetBoolean(ctx, f.Key())
		if err != nil {
			return nil, err
		}
		return feature.BooleanValue(v), nil
	default:
		return nil, errors.Join(ErrIllegalConfigDataType,
			fmt.Errorf("feature %q declares type %s", f.Key(), f.Type()))
	}
}

// SaveMockedConfigValue stores v as the override for f.
func (r *Repository) SaveMockedConfigValue(ctx context.Context, f feature.Feature, v feature.Value) error {
	switch v := v.(type) {
	case feature.LongValue:
		return r.storage.SaveLong(ctx, f.Key(), int64(v))
	case feature.DoubleValue:
		return r.storage.SaveDouble(ctx, f.Key(), float64(v))
	case feature.TextValue:
		return r.storage.SaveString(ctx, f.Key(), string(v))
	case feature.BooleanValue:
		return r.storage.SaveBoolean(ctx, f.Key(), bool(v))
	default:
		return errors.Join(ErrIllegalConfigDataType, fmt.Errorf("cannot store %T", v))
	}
}

// RemoveMockedConfigValue deletes the override for f, if any.
func (r *Repository) RemoveMockedConfigValue(ctx context.Context, f feature.Feature) error {
	return r.storage.Remove(ctx, f.Key())
}

// ClearMockedConfigValues deletes every stored override.
func (r *Repository) ClearMockedConfigValues(ctx context.Context) error {
	return r.storage.Clear(ctx)
}
