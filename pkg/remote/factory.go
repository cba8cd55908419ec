package remote

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrymomot/proteus/pkg/feature"
)

type registration struct {
	tag      string
	provider feature.Provider
}

// Factory maps config owners to the remote providers serving their features.
// It is populated once at startup and read-only afterwards.
type Factory struct {
	owners       map[string]registration
	routes       map[string]string
	defaultOwner string
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithProvider registers provider under owner. tag is the label shown to humans.
// A nil provider is a wiring bug and panics.
func WithProvider(owner, tag string, provider feature.Provider) FactoryOption {
	if provider == nil {
		panic(fmt.Sprintf("remote: nil provider for owner %q", owner))
	}
	return func(f *Factory) {
		if tag == "" {
			tag = owner
		}
		f.owners[owner] = registration{tag: tag, provider: provider}
	}
}

// WithKeyRoute sends the feature key to owner's provider.
func WithKeyRoute(key, owner string) FactoryOption {
	return func(f *Factory) {
		f.routes[key] = owner
	}
}

// WithDefaultOwner names the owner used for features that declare none.
func WithDefaultOwner(owner string) FactoryOption {
	return func(f *Factory) {
		f.defaultOwner = owner
	}
}

func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		owners: make(map[string]registration),
		routes: make(map[string]string),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GetProvider resolves an owner name first, then a key route.
func (f *Factory) GetProvider(ownerOrKey string) (feature.Provider, error) {
	reg, err := f.resolve(ownerOrKey)
	if err != nil {
		return nil, err
	}
	return reg.provider, nil
}

// GetProviderTag returns the label of the owner resolved for ownerOrKey.
func (f *Factory) GetProviderTag(ownerOrKey string) (string, error) {
	reg, err := f.resolve(ownerOrKey)
	if err != nil {
		return "", err
	}
	return reg.tag, nil
}

// ProviderFor picks the provider for a feature: its declared owner when set,
// otherwise a key route, otherwise the default owner.
func (f *Factory) ProviderFor(ft feature.Feature) (feature.Provider, error) {
	return f.GetProvider(f.OwnerOf(ft))
}

// OwnerOf returns the owner name ProviderFor would use for ft.
func (f *Factory) OwnerOf(ft feature.Feature) string {
	if ft.Owner() != "" {
		return ft.Owner()
	}
	if owner, ok := f.routes[ft.Key()]; ok {
		return owner
	}
	return f.defaultOwner
}

// Owners lists registered owner names in sorted order.
func (f *Factory) Owners() []string {
	return slices.Sorted(maps.Keys(f.owners))
}

func (f *Factory) resolve(ownerOrKey string) (registration, error) {
	if reg, ok := f.owners[ownerOrKey]; ok {
		return reg, nil
	}
	if owner, ok := f.routes[ownerOrKey]; ok {
		if reg, ok := f.owners[owner]; ok {
			return reg, nil
		}
	}
	return registration{}, errors.Join(ErrIllegalConfigOwner, fmt.Errorf("no provider registered for %q", ownerOrKey))
}
