package featurenote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/proteus/pkg/feature"
	"github.com/dmitrymomot/proteus/pkg/featurebook"
	"github.com/dmitrymomot/proteus/pkg/logger"
	"github.com/dmitrymomot/proteus/pkg/mockstore"
)

// Overrides reads and writes local override values.
type Overrides interface {
	GetMockedConfigValue(ctx context.Context, f feature.Feature) (feature.Value, error)
	SaveMockedConfigValue(ctx context.Context, f feature.Feature, v feature.Value) error
	RemoveMockedConfigValue(ctx context.Context, f feature.Feature) error
	ClearMockedConfigValues(ctx context.Context) error
}

// Remotes resolves the remote provider and its label for a feature.
type Remotes interface {
	ProviderFor(f feature.Feature) (feature.Provider, error)
	OwnerOf(f feature.Feature) string
	GetProviderTag(ownerOrKey string) (string, error)
}

// Repository merges the catalog, remote values and local overrides into notes
// and applies override edits.
type Repository struct {
	source    featurebook.Source
	overrides Overrides
	remotes   Remotes
	logger    *slog.Logger
}

type Option func(*Repository)

func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger.OrDiscard(l)
	}
}

func NewRepository(source featurebook.Source, overrides Overrides, remotes Remotes, opts ...Option) *Repository {
	if source == nil || overrides == nil || remotes == nil {
		panic("featurenote: source, overrides and remotes are required")
	}
	r := &Repository{
		source:    source,
		overrides: overrides,
		remotes:   remotes,
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(logger.Component("featurenote"))
	return r
}

// GetFeatureBook builds a note for every catalog feature, in catalog order.
func (r *Repository) GetFeatureBook(ctx context.Context) ([]Note, error) {
	features, err := r.source.GetFeatureBook(ctx)
	if err != nil {
		return nil, err
	}

	notes := make([]Note, 0, len(features))
	for _, f := range features {
		n, err := r.note(ctx, f)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// GetFeatureNote builds the note for key.
func (r *Repository) GetFeatureNote(ctx context.Context, key string) (Note, error) {
	f, err := r.GetFeature(ctx, key)
	if err != nil {
		return Note{}, err
	}
	return r.note(ctx, f)
}

// GetFeature looks key up in the catalog.
func (r *Repository) GetFeature(ctx context.Context, key string) (feature.Feature, error) {
	features, err := r.source.GetFeatureBook(ctx)
	if err != nil {
		return feature.Feature{}, err
	}
	for _, f := range features {
		if f.Key() == key {
			return f, nil
		}
	}
	return feature.Feature{}, errors.Join(ErrFeatureNotFound, fmt.Errorf("no feature with key %q", key))
}

// SaveMockedConfig stores v as the override for f. v must have f's type.
func (r *Repository) SaveMockedConfig(ctx context.Context, f feature.Feature, v feature.Value) error {
	if v == nil || v.Type() != f.Type() {
		got := feature.TypeUnknown
		if v != nil {
			got = v.Type()
		}
		return errors.Join(ErrValueTypeMismatch,
			fmt.Errorf("feature %q is %s, got %s", f.Key(), f.Type(), got))
	}
	if err := r.overrides.SaveMockedConfigValue(ctx, f, v); err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "override saved",
		logger.FeatureKey(f.Key()), logger.ValueType(v.Type()), logger.Value(v))
	return nil
}

// SaveMockedConfigString parses raw as f's type and stores it.
func (r *Repository) SaveMockedConfigString(ctx context.Context, f feature.Feature, raw string) error {
	v, err := feature.ParseValue(f.Type(), raw)
	if err != nil {
		return err
	}
	return r.SaveMockedConfig(ctx, f, v)
}

func (r *Repository) RemoveMockedConfig(ctx context.Context, f feature.Feature) error {
	if err := r.overrides.RemoveMockedConfigValue(ctx, f); err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "override removed", logger.FeatureKey(f.Key()))
	return nil
}

// ClearMockedConfigs removes every override.
func (r *Repository) ClearMockedConfigs(ctx context.Context) error {
	if err := r.overrides.ClearMockedConfigValues(ctx); err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "overrides cleared")
	return nil
}

func (r *Repository) note(ctx context.Context, f feature.Feature) (Note, error) {
	p, err := r.remotes.ProviderFor(f)
	if err != nil {
		return Note{}, err
	}
	remoteValue, err := feature.ValueOf(ctx, p, f)
	if err != nil {
		return Note{}, fmt.Errorf("remote value of %q: %w", f.Key(), err)
	}
	tag, err := r.remotes.GetProviderTag(r.remotes.OwnerOf(f))
	if err != nil {
		return Note{}, err
	}

	local, err := r.overrides.GetMockedConfigValue(ctx, f)
	if errors.Is(err, mockstore.ErrTypeMismatch) {
		r.logger.WarnContext(ctx, "ignoring override of another type", logger.FeatureKey(f.Key()))
		local, err = nil, nil
	}
	if err != nil {
		return Note{}, err
	}

	return Note{
		Feature:     f,
		RemoteValue: remoteValue.String(),
		ProviderTag: tag,
		LocalValue:  local,
	}, nil
}
