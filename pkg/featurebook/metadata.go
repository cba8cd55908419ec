package featurebook

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/proteus/pkg/feature"
)

// Metadata is one catalog record as it appears on the wire.
type Metadata struct {
	FeatureKey   string `json:"feature_key" yaml:"feature_key"`
	DefaultValue string `json:"default_value" yaml:"default_value"`
	ValueType    string `json:"value_type" yaml:"value_type"`
	Owner        string `json:"owner,omitempty" yaml:"owner,omitempty"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Mapper converts catalog records into features.
// Records without an owner get DefaultOwner.
type Mapper struct {
	DefaultOwner string
}

// ToFeature parses m.DefaultValue according to m.ValueType.
func (mp Mapper) ToFeature(m Metadata) (feature.Feature, error) {
	key := strings.TrimSpace(m.FeatureKey)
	if key == "" {
		return feature.Feature{}, errors.Join(ErrInvalidMetadata, errors.New("feature key is empty"))
	}

	t, err := feature.ParseValueType(m.ValueType)
	if err != nil {
		return feature.Feature{}, errors.Join(ErrInvalidMetadata,
			fmt.Errorf("feature %q: unknown value type %q", key, m.ValueType))
	}

	def, err := feature.ParseValue(t, m.DefaultValue)
	if err != nil {
		return feature.Feature{}, errors.Join(ErrInvalidMetadata,
			fmt.Errorf("feature %q: default value %q is not a valid %s", key, m.DefaultValue, t))
	}

	owner := m.Owner
	if owner == "" {
		owner = mp.DefaultOwner
	}
	return feature.New(key, def, feature.WithOwner(owner), feature.WithDescription(m.Description))
}

// ToFeatures maps a whole catalog, keeping its order. Keys must be unique.
func (mp Mapper) ToFeatures(records []Metadata) ([]feature.Feature, error) {
	features := make([]feature.Feature, 0, len(records))
	seen := make(map[string]int, len(records))
	for i, m := range records {
		f, err := mp.ToFeature(m)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if first, dup := seen[f.Key()]; dup {
			return nil, errors.Join(ErrDuplicateFeature,
				fmt.Errorf("feature %q appears in records %d and %d", f.Key(), first, i))
		}
		seen[f.Key()] = i
		features = append(features, f)
	}
	return features, nil
}

// FromFeature returns the catalog record describing f.
func FromFeature(f feature.Feature) Metadata {
	m := Metadata{
		FeatureKey:  f.Key(),
		ValueType:   f.Type().String(),
		Owner:       f.Owner(),
		Description: f.Description(),
	}
	if def := f.Default(); def != nil {
		m.DefaultValue = def.String()
	}
	return m
}
