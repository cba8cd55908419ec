package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/proteus/pkg/feature"
	"github.com/dmitrymomot/proteus/pkg/logger"
)

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestDomainAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "dark_mode", logger.FeatureKey("dark_mode").Value.String())
	assert.Equal(t, "firebase", logger.Owner("firebase").Value.String())
	assert.True(t, logger.Owner("").Equal(slog.Attr{}))
	assert.Equal(t, "long", logger.ValueType(feature.TypeLong).Value.String())
	assert.Equal(t, "0.5", logger.Value(feature.DoubleValue(0.5)).Value.String())
	assert.True(t, logger.Value(nil).Equal(slog.Attr{}))
	assert.Equal(t, "redis", logger.Driver("redis").Value.String())
	assert.True(t, logger.InstanceID("").Equal(slog.Attr{}))
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())
}
