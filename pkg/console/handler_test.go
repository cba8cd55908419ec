package console_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/proteus/pkg/console"
	"github.com/dmitrymomot/proteus/pkg/feature"
	"github.com/dmitrymomot/proteus/pkg/featurebook"
	"github.com/dmitrymomot/proteus/pkg/featurenote"
	"github.com/dmitrymomot/proteus/pkg/mockconfig"
	"github.com/dmitrymomot/proteus/pkg/mockstore"
	"github.com/dmitrymomot/proteus/pkg/remote"
)

type noteBody struct {
	Key            string  `json:"key"`
	Type           string  `json:"type"`
	Provider       string  `json:"provider"`
	RemoteValue    string  `json:"remote_value"`
	LocalValue     *string `json:"local_value"`
	OverrideActive bool    `json:"override_active"`
	EffectiveValue string  `json:"effective_value"`
	KeyRanges      []struct {
		Start int `json:"start"`
		End   int `json:"end"`
	} `json:"key_ranges"`
}

type bookBody struct {
	Status   string     `json:"status"`
	Error    string     `json:"error"`
	Features []noteBody `json:"features"`
}

func newServer(t *testing.T, source featurebook.Source) *httptest.Server {
	t.Helper()
	mem, err := remote.NewMemoryProvider(remote.Parameter{Key: "max_items", Value: feature.LongValue(50)})
	require.NoError(t, err)

	book := featurenote.NewRepository(
		source,
		mockconfig.NewRepository(mockstore.NewMemory()),
		remote.NewFactory(remote.WithProvider("memory", "In-memory", mem), remote.WithDefaultOwner("memory")),
	)
	srv := httptest.NewServer(console.NewHandler(book))
	t.Cleanup(srv.Close)
	return srv
}

func defaultSource() featurebook.Source {
	return featurebook.NewMemorySource(
		feature.MustNew("user_authentication", feature.BooleanValue(true)),
		feature.MustNew("max_items", feature.LongValue(10)),
	)
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHealth(t *testing.T) {
	t.Parallel()
	srv := newServer(t, defaultSource())
	resp, body := do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestListFeatures(t *testing.T) {
	t.Parallel()
	srv := newServer(t, defaultSource())

	resp, body := do(t, http.MethodGet, srv.URL+"/features", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var book bookBody
	require.NoError(t, json.Unmarshal(body, &book))
	assert.Equal(t, "loaded", book.Status)
	require.Len(t, book.Features, 2)
	assert.Equal(t, "50", book.Features[1].RemoteValue)
	assert.Equal(t, "In-memory", book.Features[1].Provider)

	resp, body = do(t, http.MethodGet, srv.URL+"/features?q=AUTH", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	book = bookBody{}
	require.NoError(t, json.Unmarshal(body, &book))
	require.Len(t, book.Features, 1)
	assert.Equal(t, "user_authentication", book.Features[0].Key)
	require.Len(t, book.Features[0].KeyRanges, 1)
	assert.Equal(t, 5, book.Features[0].KeyRanges[0].Start)
	assert.Equal(t, 9, book.Features[0].KeyRanges[0].End)
}

func TestListFeaturesLoadError(t *testing.T) {
	t.Parallel()
	srv := newServer(t, failingSource{err: errors.New("catalog offline")})

	resp, body := do(t, http.MethodGet, srv.URL+"/features", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var book bookBody
	require.NoError(t, json.Unmarshal(body, &book))
	assert.Equal(t, "error", book.Status)
	assert.Equal(t, "catalog offline", book.Error)
	assert.Empty(t, book.Features)
}

func TestOverrideLifecycle(t *testing.T) {
	t.Parallel()
	srv := newServer(t, defaultSource())
	url := srv.URL + "/features/max_items"

	resp, body := do(t, http.MethodPut, url+"/override", `{"value": "7"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var note noteBody
	require.NoError(t, json.Unmarshal(body, &note))
	assert.True(t, note.OverrideActive)
	require.NotNil(t, note.LocalValue)
	assert.Equal(t, "7", *note.LocalValue)
	assert.Equal(t, "7", note.EffectiveValue)
	assert.Equal(t, "50", note.RemoteValue)

	resp, body = do(t, http.MethodGet, url, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	note = noteBody{}
	require.NoError(t, json.Unmarshal(body, &note))
	assert.True(t, note.OverrideActive)

	resp, body = do(t, http.MethodDelete, url+"/override", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	note = noteBody{}
	require.NoError(t, json.Unmarshal(body, &note))
	assert.False(t, note.OverrideActive)
	assert.Nil(t, note.LocalValue)
	assert.Equal(t, "50", note.EffectiveValue)

	_, _ = do(t, http.MethodPut, url+"/override", `{"value": "8"}`)
	resp, _ = do(t, http.MethodDelete, srv.URL+"/overrides", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, body = do(t, http.MethodGet, url, "")
	note = noteBody{}
	require.NoError(t, json.Unmarshal(body, &note))
	assert.False(t, note.OverrideActive)
}

func TestOverrideErrors(t *testing.T) {
	t.Parallel()
	srv := newServer(t, defaultSource())

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown feature", http.MethodGet, "/features/nope", "", http.StatusNotFound},
		{"unknown feature override", http.MethodPut, "/features/nope/override", `{"value": "1"}`, http.StatusNotFound},
		{"unparseable value", http.MethodPut, "/features/max_items/override", `{"value": "many"}`, http.StatusBadRequest},
		{"invalid boolean", http.MethodPut, "/features/user_authentication/override", `{"value": "yes"}`, http.StatusBadRequest},
		{"missing value", http.MethodPut, "/features/max_items/override", `{}`, http.StatusBadRequest},
		{"broken body", http.MethodPut, "/features/max_items/override", `{`, http.StatusBadRequest},
		{"remove unknown", http.MethodDelete, "/features/nope/override", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp, body := do(t, tt.method, srv.URL+tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			var e map[string]string
			require.NoError(t, json.Unmarshal(body, &e))
			assert.NotEmpty(t, e["error"])
		})
	}
}

type failingSource struct{ err error }

func (f failingSource) GetFeatureBook(context.Context) ([]feature.Feature, error) {
	return nil, f.err
}
