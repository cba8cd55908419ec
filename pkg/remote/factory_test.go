package remote_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/proteus/pkg/feature"
	"github.com/dmitrymomot/proteus/pkg/remote"
)

func TestFactory(t *testing.T) {
	t.Parallel()

	primary, err := remote.NewMemoryProvider()
	require.NoError(t, err)
	secondary, err := remote.NewMemoryProvider()
	require.NoError(t, err)

	f := remote.NewFactory(
		remote.WithProvider("firebase", "Firebase Remote Config", primary),
		remote.WithProvider("local", "", secondary),
		remote.WithKeyRoute("legacy_flag", "local"),
		remote.WithDefaultOwner("firebase"),
	)

	t.Run("owner", func(t *testing.T) {
		t.Parallel()
		p, err := f.GetProvider("firebase")
		require.NoError(t, err)
		assert.Same(t, primary, p)

		tag, err := f.GetProviderTag("firebase")
		require.NoError(t, err)
		assert.Equal(t, "Firebase Remote Config", tag)

		tag, err = f.GetProviderTag("local")
		require.NoError(t, err)
		assert.Equal(t, "local", tag, "empty tag falls back to the owner name")
	})

	t.Run("key route", func(t *testing.T) {
		t.Parallel()
		p, err := f.GetProvider("legacy_flag")
		require.NoError(t, err)
		assert.Same(t, secondary, p)
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()
		_, err := f.GetProvider("nope")
		assert.ErrorIs(t, err, remote.ErrIllegalConfigOwner)

		_, err = f.GetProviderTag("nope")
		assert.ErrorIs(t, err, remote.ErrIllegalConfigOwner)
	})

	t.Run("provider for feature", func(t *testing.T) {
		t.Parallel()
		owned := feature.MustNew("a", feature.BooleanValue(true), feature.WithOwner("local"))
		routed := feature.MustNew("legacy_flag", feature.BooleanValue(true))
		plain := feature.MustNew("b", feature.BooleanValue(true))
		orphan := feature.MustNew("c", feature.BooleanValue(true), feature.WithOwner("unknown"))

		p, err := f.ProviderFor(owned)
		require.NoError(t, err)
		assert.Same(t, secondary, p)

		p, err = f.ProviderFor(routed)
		require.NoError(t, err)
		assert.Same(t, secondary, p)

		p, err = f.ProviderFor(plain)
		require.NoError(t, err)
		assert.Same(t, primary, p)
		assert.Equal(t, "firebase", f.OwnerOf(plain))

		_, err = f.ProviderFor(orphan)
		assert.ErrorIs(t, err, remote.ErrIllegalConfigOwner)
	})

	assert.Equal(t, []string{"firebase", "local"}, f.Owners())
}

func TestFactoryWithoutDefaultOwner(t *testing.T) {
	t.Parallel()
	f := remote.NewFactory()
	_, err := f.ProviderFor(feature.MustNew("x", feature.LongValue(1)))
	assert.ErrorIs(t, err, remote.ErrIllegalConfigOwner)
}

func TestWithProviderNilPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { remote.WithProvider("x", "X", nil) })
}
