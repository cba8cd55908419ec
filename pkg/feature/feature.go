package feature

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Feature describes a named, typed configuration value with an in-app default.
// It is immutable once constructed.
type Feature struct {
	key          string
	defaultValue Value
	owner        string
	description  string
}

// Option configures a Feature during construction.
type Option func(*Feature)

// WithOwner sets the identifier of the remote service authoritative for the feature.
func WithOwner(owner string) Option {
	return func(f *Feature) {
		f.owner = strings.TrimSpace(owner)
	}
}

// WithDescription attaches a human-readable description.
func WithDescription(description string) Option {
	return func(f *Feature) {
		f.description = description
	}
}

// New creates a feature descriptor.
// The key must be non-empty and the default value must be set.
func New(key string, defaultValue Value, opts ...Option) (Feature, error) {
	if strings.TrimSpace(key) == "" {
		return Feature{}, errors.Join(ErrInvalidFeature, errors.New("feature key cannot be empty"))
	}
	if defaultValue == nil {
		return Feature{}, errors.Join(ErrInvalidFeature, fmt.Errorf("feature %q has no default value", key))
	}

	f := Feature{key: key, defaultValue: defaultValue}
	for _, opt := range opts {
		opt(&f)
	}
	return f, nil
}

// MustNew is like New but panics on error. Intended for static catalogs.
func MustNew(key string, defaultValue Value, opts ...Option) Feature {
	f, err := New(key, defaultValue, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f Feature) Key() string         { return f.key }
func (f Feature) Default() Value      { return f.defaultValue }
func (f Feature) Owner() string       { return f.owner }
func (f Feature) Description() string { return f.description }

// Type returns the declared value type, derived from the default value.
func (f Feature) Type() ValueType {
	if f.defaultValue == nil {
		return TypeUnknown
	}
	return f.defaultValue.Type()
}

// MarshalJSON encodes the feature in the catalog wire format.
func (f Feature) MarshalJSON() ([]byte, error) {
	var def string
	if f.defaultValue != nil {
		def = f.defaultValue.String()
	}
	return json.Marshal(struct {
		Key          string `json:"feature_key"`
		DefaultValue string `json:"default_value"`
		ValueType    string `json:"value_type"`
		Owner        string `json:"owner,omitempty"`
		Description  string `json:"description,omitempty"`
	}{
		Key:          f.key,
		DefaultValue: def,
		ValueType:    f.Type().String(),
		Owner:        f.owner,
		Description:  f.description,
	})
}

// Provider resolves typed values for features.
// Implementations include remote backends, the local override provider and
// the resolver that chains both.
type Provider interface {
	GetBoolean(ctx context.Context, f Feature) (bool, error)
	GetString(ctx context.Context, f Feature) (string, error)
	GetLong(ctx context.Context, f Feature) (int64, error)
	GetDouble(ctx context.Context, f Feature) (float64, error)
}

// ValueOf calls the getter matching the feature's declared type and wraps the result.
func ValueOf(ctx context.Context, p Provider, f Feature) (Value, error) {
	switch f.Type() {
	case TypeLong:
		v, err := p.GetLong(ctx, f)
		if err != nil {
			return nil, err
		}
		return LongValue(v), nil
	case TypeDouble:
		v, err := p.GetDouble(ctx, f)
		if err != nil {
			return nil, err
		}
		return DoubleValue(v), nil
	case TypeText:
		v, err := p.GetString(ctx, f)
		if err != nil {
			return nil, err
		}
		return TextValue(v), nil
	case TypeBoolean:
		v, err := p.GetBoolean(ctx, f)
		if err != nil {
			return nil, err
		}
		return BooleanValue(v), nil
	default:
		return nil, errors.Join(ErrInvalidValueType, fmt.Errorf("feature %q has type %s", f.key, f.Type()))
	}
}
