package mockconfig_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/proteus/pkg/feature"
	"github.com/dmitrymomot/proteus/pkg/mockconfig"
	"github.com/dmitrymomot/proteus/pkg/mockstore"
)

var (
	darkMode = feature.MustNew("dark_mode", feature.BooleanValue(false))
	maxItems = feature.MustNew("max_items", feature.LongValue(10))
	ratio    = feature.MustNew("ratio", feature.DoubleValue(0.5))
	greeting = feature.MustNew("greeting", feature.TextValue("hi"))
)

// failingStorage embeds the interface so only the mocked methods are reachable.
type failingStorage struct {
	mockstore.Storage
	mock.Mock
}

func (m *failingStorage) Contains(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := mockconfig.NewRepository(mockstore.NewMemory())

	cases := []struct {
		f feature.Feature
		v feature.Value
	}{
		{darkMode, feature.BooleanValue(true)},
		{maxItems, feature.LongValue(42)},
		{ratio, feature.DoubleValue(0.25)},
		{greeting, feature.TextValue("hello")},
	}
	for _, tc := range cases {
		v, err := repo.GetMockedConfigValue(ctx, tc.f)
		require.NoError(t, err)
		assert.Nil(t, v, tc.f.Key())

		require.NoError(t, repo.SaveMockedConfigValue(ctx, tc.f, tc.v))
		v, err = repo.GetMockedConfigValue(ctx, tc.f)
		require.NoError(t, err)
		assert.Equal(t, tc.v, v, tc.f.Key())
	}

	require.NoError(t, repo.RemoveMockedConfigValue(ctx, darkMode))
	v, err := repo.GetMockedConfigValue(ctx, darkMode)
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, repo.ClearMockedConfigValues(ctx))
	v, err = repo.GetMockedConfigValue(ctx, maxItems)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestRepositoryTypeMismatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := mockstore.NewMemory()
	repo := mockconfig.NewRepository(store)

	require.NoError(t, store.SaveString(ctx, darkMode.Key(), "true"))

	_, err := repo.GetMockedConfigValue(ctx, darkMode)
	assert.ErrorIs(t, err, mockstore.ErrTypeMismatch)
}

func TestRepositoryRejectsNilValue(t *testing.T) {
	t.Parallel()
	repo := mockconfig.NewRepository(mockstore.NewMemory())

	err := repo.SaveMockedConfigValue(context.Background(), darkMode, nil)
	assert.ErrorIs(t, err, mockconfig.ErrIllegalConfigDataType)
}

func TestProviderLookups(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := mockstore.NewMemory()
	p := mockconfig.NewProvider(mockconfig.NewRepository(store))

	b, ok, err := p.LookupBoolean(ctx, darkMode)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, b)

	require.NoError(t, store.SaveBoolean(ctx, darkMode.Key(), true))
	require.NoError(t, store.SaveLong(ctx, maxItems.Key(), 7))
	require.NoError(t, store.SaveDouble(ctx, ratio.Key(), 0.9))
	require.NoError(t, store.SaveString(ctx, greeting.Key(), "hey"))

	b, ok, err = p.LookupBoolean(ctx, darkMode)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, b)

	n, ok, err := p.LookupLong(ctx, maxItems)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)

	d, ok, err := p.LookupDouble(ctx, ratio)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0.9, d)

	s, ok, err := p.LookupString(ctx, greeting)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hey", s)

	v, ok, err := p.Lookup(ctx, maxItems)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, feature.LongValue(7), v)
}

func TestProviderWrongVariantIsUnavailable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := mockstore.NewMemory()
	p := mockconfig.NewProvider(mockconfig.NewRepository(store))

	require.NoError(t, store.SaveBoolean(ctx, darkMode.Key(), true))

	// The feature is boolean, so asking for a string variant finds nothing usable.
	_, ok, err := p.LookupString(ctx, darkMode)
	require.NoError(t, err)
	assert.False(t, ok)

	// A stored entry of another type than the feature declares is skipped too.
	require.NoError(t, store.SaveString(ctx, maxItems.Key(), "7"))
	_, ok, err = p.LookupLong(ctx, maxItems)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = p.Lookup(ctx, maxItems)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProviderAsFeatureProvider(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := mockstore.NewMemory()
	var p feature.Provider = mockconfig.NewProvider(mockconfig.NewRepository(store))

	_, err := p.GetBoolean(ctx, darkMode)
	assert.ErrorIs(t, err, mockconfig.ErrMockConfigUnavailable)

	require.NoError(t, store.SaveLong(ctx, maxItems.Key(), 3))
	n, err := p.GetLong(ctx, maxItems)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	v, err := feature.ValueOf(ctx, p, maxItems)
	require.NoError(t, err)
	assert.Equal(t, feature.LongValue(3), v)
}

func TestProviderStorageFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	boom := errors.New("connection refused")

	storage := &failingStorage{}
	storage.On("Contains", mock.Anything, darkMode.Key()).Return(false, boom)

	p := mockconfig.NewProvider(mockconfig.NewRepository(storage))
	_, ok, err := p.LookupBoolean(ctx, darkMode)
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)

	_, err = p.GetBoolean(ctx, darkMode)
	assert.ErrorIs(t, err, boom)
	storage.AssertExpectations(t)
}

func TestConstructorsRejectNil(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { mockconfig.NewRepository(nil) })
	assert.Panics(t, func() { mockconfig.NewProvider(nil) })
}
