package featurenote_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/proteus/pkg/featurenote"
)

func TestState(t *testing.T) {
	t.Parallel()

	assert.Equal(t, featurenote.StatusLoading, featurenote.Loading().Status)

	notes := []featurenote.Note{{RemoteValue: "x"}}
	loaded := featurenote.Load(context.Background(), func(context.Context) ([]featurenote.Note, error) {
		return notes, nil
	})
	assert.Equal(t, featurenote.StatusLoaded, loaded.Status)
	assert.Equal(t, notes, loaded.Notes)
	assert.Empty(t, loaded.Message)

	calls := 0
	failed := featurenote.Load(context.Background(), func(context.Context) ([]featurenote.Note, error) {
		calls++
		return nil, errors.New("catalog unavailable")
	})
	assert.Equal(t, 1, calls, "no retries")
	assert.Equal(t, featurenote.StatusError, failed.Status)
	assert.Equal(t, "catalog unavailable", failed.Message)
	assert.Nil(t, failed.Notes)

	text, err := featurenote.StatusError.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "error", string(text))
}
