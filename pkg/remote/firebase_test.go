package remote_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/proteus/pkg/feature"
	"github.com/dmitrymomot/proteus/pkg/remote"
)

const template = `{
  "parameters": {
    "new_checkout": {"defaultValue": {"value": "true"}},
    "page_size": {"defaultValue": {"value": "50"}},
    "discount": {"defaultValue": {"value": "0.25"}},
    "banner_text": {"defaultValue": {"useInAppDefault": true}},
    "broken_flag": {"defaultValue": {"value": "maybe"}},
    "theme.name": {"defaultValue": {"value": "dark"}}
  },
  "parameterGroups": {
    "onboarding": {
      "parameters": {
        "tutorial_steps": {"defaultValue": {"value": "4"}}
      }
    }
  },
  "version": {"versionNumber": "17"}
}`

func newTemplateServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/v1/projects/demo-project/remoteConfig" || r.Header.Get("Authorization") != "Bearer test-token" {
			http.Error(w, "unexpected request", http.StatusBadRequest)
			return
		}
		w.Header().Set("ETag", "etag-17")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newFirebase(t *testing.T, baseURL string) *remote.FirebaseProvider {
	t.Helper()
	p, err := remote.NewFirebaseProvider(context.Background(),
		remote.FirebaseConfig{ProjectID: "demo-project", BaseURL: baseURL},
		remote.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})),
	)
	require.NoError(t, err)
	return p
}

func TestFirebaseProviderBeforeFetch(t *testing.T) {
	t.Parallel()
	srv, calls := newTemplateServer(t, http.StatusOK, template)
	p := newFirebase(t, srv.URL)

	b, err := p.GetBoolean(context.Background(), checkout)
	require.NoError(t, err)
	assert.False(t, b, "in-app default before the first fetch")
	assert.Empty(t, p.Version())
	assert.Zero(t, calls.Load())
}

func TestFirebaseProviderFetch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	srv, _ := newTemplateServer(t, http.StatusOK, template)
	p := newFirebase(t, srv.URL)

	require.NoError(t, p.Fetch(ctx))
	assert.Equal(t, "17", p.Version())
	assert.Equal(t, "etag-17", p.ETag())

	b, err := p.GetBoolean(ctx, checkout)
	require.NoError(t, err)
	assert.True(t, b)

	n, err := p.GetLong(ctx, pageSize)
	require.NoError(t, err)
	assert.Equal(t, int64(50), n)

	d, err := p.GetDouble(ctx, discount)
	require.NoError(t, err)
	assert.Equal(t, 0.25, d)

	s, err := p.GetString(ctx, banner)
	require.NoError(t, err)
	assert.Equal(t, "Welcome", s, "useInAppDefault keeps the feature default")

	dotted := feature.MustNew("theme.name", feature.TextValue("light"))
	s, err = p.GetString(ctx, dotted)
	require.NoError(t, err)
	assert.Equal(t, "dark", s)

	grouped := feature.MustNew("tutorial_steps", feature.LongValue(1))
	n, err = p.GetLong(ctx, grouped)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	missing := feature.MustNew("not_in_template", feature.LongValue(3))
	n, err = p.GetLong(ctx, missing)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	broken := feature.MustNew("broken_flag", feature.BooleanValue(false))
	_, err = p.GetBoolean(ctx, broken)
	assert.ErrorIs(t, err, remote.ErrRemoteValueType)
}

func TestFirebaseProviderBooleanVocabulary(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv, _ := newTemplateServer(t, http.StatusOK, `{
  "parameters": {
    "a": {"defaultValue": {"value": "1"}},
    "b": {"defaultValue": {"value": "yes"}},
    "c": {"defaultValue": {"value": "On"}},
    "d": {"defaultValue": {"value": "0"}},
    "e": {"defaultValue": {"value": "OFF"}},
    "f": {"defaultValue": {"value": "n"}}
  }
}`)
	p := newFirebase(t, srv.URL)
	require.NoError(t, p.Fetch(ctx))

	for key, want := range map[string]bool{"a": true, "b": true, "c": true, "d": false, "e": false, "f": false} {
		f := feature.MustNew(key, feature.BooleanValue(!want))
		got, err := p.GetBoolean(ctx, f)
		require.NoError(t, err, key)
		assert.Equal(t, want, got, key)
	}

	// Text parameters keep the raw value.
	s, err := p.GetString(ctx, feature.MustNew("b", feature.TextValue("")))
	require.NoError(t, err)
	assert.Equal(t, "yes", s)
}

func TestFirebaseProviderFetchFailureKeepsTemplate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var down atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(template))
	}))
	t.Cleanup(srv.Close)

	p := newFirebase(t, srv.URL)
	require.NoError(t, p.Fetch(ctx))

	down.Store(true)
	err := p.Fetch(ctx)
	assert.ErrorIs(t, err, remote.ErrTemplateFetch)

	b, err := p.GetBoolean(ctx, checkout)
	require.NoError(t, err)
	assert.True(t, b, "previous template stays active")
	assert.Equal(t, "17", p.Version())
}

func TestFirebaseProviderInvalidTemplate(t *testing.T) {
	t.Parallel()
	srv, _ := newTemplateServer(t, http.StatusOK, "{oops")
	p := newFirebase(t, srv.URL)

	err := p.Fetch(context.Background())
	assert.ErrorIs(t, err, remote.ErrInvalidTemplate)
	assert.Empty(t, p.Version())
}

func TestNewFirebaseProviderRequiresProject(t *testing.T) {
	t.Parallel()
	_, err := remote.NewFirebaseProvider(context.Background(), remote.FirebaseConfig{})
	assert.ErrorIs(t, err, remote.ErrMissingProjectID)

	_, err = remote.NewFirebaseProvider(context.Background(),
		remote.FirebaseConfig{ProjectID: "p", CredentialsFile: "/does/not/exist.json"})
	assert.ErrorIs(t, err, remote.ErrFailedToLoadCredentials)
}
