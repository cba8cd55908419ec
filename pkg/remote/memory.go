package remote

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/dmitrymomot/proteus/pkg/feature"
)

// Rule returns Value when Condition matches.
type Rule struct {
	Condition Condition
	Value     feature.Value
}

// Parameter is a remotely managed value with optional conditional rules.
// Rules are evaluated in order; the first match wins, otherwise Value is used.
type Parameter struct {
	Key   string
	Value feature.Value
	Rules []Rule
}

func (p Parameter) validate() error {
	if p.Key == "" {
		return errors.Join(ErrInvalidParameter, errors.New("parameter key cannot be empty"))
	}
	if p.Value == nil {
		return errors.Join(ErrInvalidParameter, fmt.Errorf("parameter %q has no value", p.Key))
	}
	for i, r := range p.Rules {
		if r.Condition == nil || r.Value == nil {
			return errors.Join(ErrInvalidParameter, fmt.Errorf("parameter %q: rule %d is incomplete", p.Key, i))
		}
	}
	return nil
}

// MemoryProvider serves remote values held in process memory.
// It is the remote backend for tests, demos and offline development.
type MemoryProvider struct {
	mu     sync.RWMutex
	params map[string]Parameter
}

// NewMemoryProvider creates a provider seeded with params.
func NewMemoryProvider(params ...Parameter) (*MemoryProvider, error) {
	m := &MemoryProvider{params: make(map[string]Parameter, len(params))}
	for _, p := range params {
		if err := p.validate(); err != nil {
			return nil, err
		}
		m.params[p.Key] = clone(p)
	}
	return m, nil
}

// Set creates or replaces a parameter.
func (m *MemoryProvider) Set(key string, value feature.Value, rules ...Rule) error {
	p := Parameter{Key: key, Value: value, Rules: rules}
	if err := p.validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.params[key] = clone(p)
	return nil
}

// Delete removes a parameter; later reads fall back to in-app defaults.
func (m *MemoryProvider) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.params, key)
}

// Keys returns the configured parameter keys in sorted order.
func (m *MemoryProvider) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.params))
}

func (m *MemoryProvider) GetBoolean(ctx context.Context, f feature.Feature) (bool, error) {
	v, err := evaluate[feature.BooleanValue](ctx, m, f)
	return bool(v), err
}

func (m *MemoryProvider) GetString(ctx context.Context, f feature.Feature) (string, error) {
	v, err := evaluate[feature.TextValue](ctx, m, f)
	return string(v), err
}

func (m *MemoryProvider) GetLong(ctx context.Context, f feature.Feature) (int64, error) {
	v, err := evaluate[feature.LongValue](ctx, m, f)
	return int64(v), err
}

func (m *MemoryProvider) GetDouble(ctx context.Context, f feature.Feature) (float64, error) {
	v, err := evaluate[feature.DoubleValue](ctx, m, f)
	return float64(v), err
}

func (m *MemoryProvider) lookup(ctx context.Context, f feature.Feature) (feature.Value, error) {
	m.mu.RLock()
	p, ok := m.params[f.Key()]
	m.mu.RUnlock()

	if !ok {
		return f.Default(), nil
	}
	for _, r := range p.Rules {
		match, err := r.Condition.Match(ctx)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", p.Key, err)
		}
		if match {
			return r.Value, nil
		}
	}
	return p.Value, nil
}

func evaluate[T feature.Value](ctx context.Context, m *MemoryProvider, f feature.Feature) (T, error) {
	var zero T
	v, err := m.lookup(ctx, f)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.Join(ErrRemoteValueType,
			fmt.Errorf("parameter %q holds %s, requested %s", f.Key(), typeOf(v), zero.Type()))
	}
	return t, nil
}

func typeOf(v feature.Value) feature.ValueType {
	if v == nil {
		return feature.TypeUnknown
	}
	return v.Type()
}

func clone(p Parameter) Parameter {
	p.Rules = slices.Clone(p.Rules)
	return p
}
