package featurenote

import "github.com/dmitrymomot/proteus/pkg/feature"

// Note is the editor view of one catalog feature.
type Note struct {
	Feature feature.Feature
	// RemoteValue is the remote provider's answer in string form.
	RemoteValue string
	// ProviderTag labels the remote provider serving the feature.
	ProviderTag string
	// LocalValue is the active override, nil when none applies.
	LocalValue feature.Value
}

func (n Note) IsOverrideActivated() bool {
	return n.LocalValue != nil
}

// EffectiveValue is what the application currently sees for the feature.
func (n Note) EffectiveValue() string {
	if n.LocalValue != nil {
		return n.LocalValue.String()
	}
	return n.RemoteValue
}
