package mockstore

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"

	"github.com/dmitrymomot/proteus/pkg/feature"
)

// DefaultKeyPrefix namespaces every persisted override key.
const DefaultKeyPrefix = "proteus_mock_"

// Storage persists override values keyed by feature key.
// A stored key always holds exactly one primitive type; reading it with another
// type returns ErrTypeMismatch. Getters return the zero value for absent keys.
type Storage interface {
	Contains(ctx context.Context, key string) (bool, error)

	GetLong(ctx context.Context, key string) (int64, error)
	GetDouble(ctx context.Context, key string) (float64, error)
	GetString(ctx context.Context, key string) (string, error)
	GetBoolean(ctx context.Context, key string) (bool, error)

	SaveLong(ctx context.Context, key string, value int64) error
	SaveDouble(ctx context.Context, key string, value float64) error
	SaveString(ctx context.Context, key string, value string) error
	SaveBoolean(ctx context.Context, key string, value bool) error

	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Entry is the persisted form of an override: a type tag plus the canonical string form.
type Entry struct {
	Type  feature.ValueType `json:"type"`
	Value string            `json:"value"`
}

// Backend is the minimal persistence contract implemented by each storage driver.
// Keys passed to a Backend are already namespaced and hashed.
type Backend interface {
	Load(ctx context.Context, key string) (Entry, bool, error)
	Store(ctx context.Context, key string, entry Entry) error
	Delete(ctx context.Context, key string) error
	// DeleteAll removes every entry whose key starts with prefix.
	DeleteAll(ctx context.Context, prefix string) error
}

// Store implements Storage on top of a Backend.
type Store struct {
	backend Backend
	prefix  string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKeyPrefix overrides DefaultKeyPrefix. Empty prefixes are ignored.
func WithKeyPrefix(prefix string) StoreOption {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// New wraps a backend into a typed override store.
func New(backend Backend, opts ...StoreOption) *Store {
	if backend == nil {
		panic("mockstore: backend cannot be nil")
	}
	s := &Store{backend: backend, prefix: DefaultKeyPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewMemory returns a Store backed by a fresh MemoryBackend.
func NewMemory(opts ...StoreOption) *Store {
	return New(NewMemoryBackend(), opts...)
}

// HashKey returns the namespaced storage key for a feature key.
// FNV-1a is used for obfuscation and namespacing only; it is not a security boundary.
func HashKey(prefix, key string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return fmt.Sprintf("%s%016x", prefix, h.Sum64())
}

func (s *Store) key(key string) string {
	return HashKey(s.prefix, key)
}

func (s *Store) Contains(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.backend.Load(ctx, s.key(key))
	if err != nil {
		return false, errors.Join(ErrBackendFailure, err)
	}
	return ok, nil
}

func (s *Store) GetLong(ctx context.Context, key string) (int64, error) {
	v, err := s.get(ctx, key, feature.TypeLong)
	if err != nil || v == nil {
		return 0, err
	}
	return int64(v.(feature.LongValue)), nil
}

func (s *Store) GetDouble(ctx context.Context, key string) (float64, error) {
	v, err := s.get(ctx, key, feature.TypeDouble)
	if err != nil || v == nil {
		return 0, err
	}
	return float64(v.(feature.DoubleValue)), nil
}

func (s *Store) GetString(ctx context.Context, key string) (string, error) {
	v, err := s.get(ctx, key, feature.TypeText)
	if err != nil || v == nil {
		return "", err
	}
	return string(v.(feature.TextValue)), nil
}

func (s *Store) GetBoolean(ctx context.Context, key string) (bool, error) {
	v, err := s.get(ctx, key, feature.TypeBoolean)
	if err != nil || v == nil {
		return false, err
	}
	return bool(v.(feature.BooleanValue)), nil
}

func (s *Store) SaveLong(ctx context.Context, key string, value int64) error {
	return s.save(ctx, key, feature.LongValue(value))
}

func (s *Store) SaveDouble(ctx context.Context, key string, value float64) error {
	return s.save(ctx, key, feature.DoubleValue(value))
}

func (s *Store) SaveString(ctx context.Context, key string, value string) error {
	return s.save(ctx, key, feature.TextValue(value))
}

func (s *Store) SaveBoolean(ctx context.Context, key string, value bool) error {
	return s.save(ctx, key, feature.BooleanValue(value))
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, s.key(key)); err != nil {
		return errors.Join(ErrBackendFailure, err)
	}
	return nil
}

// Clear removes every override in this store's namespace.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.DeleteAll(ctx, s.prefix); err != nil {
		return errors.Join(ErrBackendFailure, err)
	}
	return nil
}

// Close releases the backend if it holds resources.
func (s *Store) Close() error {
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// get returns nil without error when the key is absent.
func (s *Store) get(ctx context.Context, key string, want feature.ValueType) (feature.Value, error) {
	entry, ok, err := s.backend.Load(ctx, s.key(key))
	if err != nil {
		return nil, errors.Join(ErrBackendFailure, err)
	}
	if !ok {
		return nil, nil
	}
	if entry.Type != want {
		return nil, errors.Join(ErrTypeMismatch,
			fmt.Errorf("key %q holds %s, requested %s", key, entry.Type, want))
	}
	v, err := feature.ParseValue(entry.Type, entry.Value)
	if err != nil {
		return nil, errors.Join(ErrCorruptedEntry, err)
	}
	return v, nil
}

func (s *Store) save(ctx context.Context, key string, v feature.Value) error {
	if key == "" {
		return ErrEmptyKey
	}
	entry := Entry{Type: v.Type(), Value: v.String()}
	if err := s.backend.Store(ctx, s.key(key), entry); err != nil {
		return errors.Join(ErrBackendFailure, err)
	}
	return nil
}

// Ping checks backend connectivity when the backend supports it.
func (s *Store) Ping(ctx context.Context) error {
	p, ok := s.backend.(interface{ Ping(context.Context) error })
	if !ok {
		return nil
	}
	if err := p.Ping(ctx); err != nil {
		return errors.Join(ErrBackendFailure, err)
	}
	return nil
}
