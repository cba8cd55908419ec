package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/dmitrymomot/proteus/pkg/feature"
)

// RemoteConfigScope is the OAuth2 scope required to read Remote Config templates.
const RemoteConfigScope = "https://www.googleapis.com/auth/firebase.remoteconfig"

// maxTemplateSize bounds the template body read from the API.
const maxTemplateSize = 10 << 20

// FirebaseConfig holds connection settings for the Remote Config REST API.
type FirebaseConfig struct {
	ProjectID       string        `env:"FIREBASE_PROJECT_ID"`
	CredentialsFile string        `env:"FIREBASE_CREDENTIALS_FILE"`
	BaseURL         string        `env:"FIREBASE_REMOTE_CONFIG_URL" envDefault:"https://firebaseremoteconfig.googleapis.com"`
	FetchTimeout    time.Duration `env:"FIREBASE_FETCH_TIMEOUT" envDefault:"10s"`
}

// FirebaseProvider answers typed getters from the active Remote Config template.
// Until Fetch succeeds every getter returns the feature's in-app default.
type FirebaseProvider struct {
	cfg    FirebaseConfig
	client *http.Client
	ts     oauth2.TokenSource
	logger *slog.Logger

	mu       sync.RWMutex
	template []byte
	etag     string
}

type FirebaseOption func(*FirebaseProvider)

// WithTokenSource supplies credentials directly, bypassing credential discovery.
func WithTokenSource(ts oauth2.TokenSource) FirebaseOption {
	return func(p *FirebaseProvider) {
		p.ts = ts
	}
}

// WithHTTPClient uses client as is. It must already attach credentials.
func WithHTTPClient(client *http.Client) FirebaseOption {
	return func(p *FirebaseProvider) {
		p.client = client
	}
}

func WithFirebaseLogger(logger *slog.Logger) FirebaseOption {
	return func(p *FirebaseProvider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewFirebaseProvider builds a provider. Credentials come from, in order: an
// explicit HTTP client, WithTokenSource, cfg.CredentialsFile, application
// default credentials. No request is made until Fetch.
func NewFirebaseProvider(ctx context.Context, cfg FirebaseConfig, opts ...FirebaseOption) (*FirebaseProvider, error) {
	if cfg.ProjectID == "" {
		return nil, ErrMissingProjectID
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://firebaseremoteconfig.googleapis.com"
	}

	p := &FirebaseProvider{
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.client != nil {
		return p, nil
	}

	if p.ts == nil {
		ts, err := tokenSource(ctx, cfg.CredentialsFile)
		if err != nil {
			return nil, errors.Join(ErrFailedToLoadCredentials, err)
		}
		p.ts = ts
	}

	p.client = oauth2.NewClient(ctx, p.ts)
	p.client.Timeout = cfg.FetchTimeout
	return p, nil
}

func tokenSource(ctx context.Context, credentialsFile string) (oauth2.TokenSource, error) {
	if credentialsFile == "" {
		return google.DefaultTokenSource(ctx, RemoteConfigScope)
	}
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, err
	}
	creds, err := google.CredentialsFromJSON(ctx, data, RemoteConfigScope)
	if err != nil {
		return nil, err
	}
	return creds.TokenSource, nil
}

// Fetch downloads the current template and activates it.
// A failed fetch keeps the previously active template.
func (p *FirebaseProvider) Fetch(ctx context.Context) error {
	endpoint := strings.TrimRight(p.cfg.BaseURL, "/") +
		"/v1/projects/" + url.PathEscape(p.cfg.ProjectID) + "/remoteConfig"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Join(ErrTemplateFetch, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Join(ErrTemplateFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.Join(ErrTemplateFetch, fmt.Errorf("remote config api returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTemplateSize))
	if err != nil {
		return errors.Join(ErrTemplateFetch, err)
	}
	if !gjson.ValidBytes(body) {
		return ErrInvalidTemplate
	}

	p.mu.Lock()
	p.template = body
	p.etag = resp.Header.Get("ETag")
	p.mu.Unlock()

	p.logger.DebugContext(ctx, "remote config template activated",
		slog.String("project", p.cfg.ProjectID),
		slog.String("version", gjson.GetBytes(body, "version.versionNumber").String()),
		slog.Int("parameters", len(gjson.GetBytes(body, "parameters").Map())),
	)
	return nil
}

// Version returns the version number of the active template, or "" before the first fetch.
func (p *FirebaseProvider) Version() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.template == nil {
		return ""
	}
	return gjson.GetBytes(p.template, "version.versionNumber").String()
}

// ETag returns the ETag header of the active template.
func (p *FirebaseProvider) ETag() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.etag
}

func (p *FirebaseProvider) GetBoolean(ctx context.Context, f feature.Feature) (bool, error) {
	v, err := parameter[feature.BooleanValue](p, f)
	return bool(v), err
}

func (p *FirebaseProvider) GetString(ctx context.Context, f feature.Feature) (string, error) {
	v, err := parameter[feature.TextValue](p, f)
	return string(v), err
}

func (p *FirebaseProvider) GetLong(ctx context.Context, f feature.Feature) (int64, error) {
	v, err := parameter[feature.LongValue](p, f)
	return int64(v), err
}

func (p *FirebaseProvider) GetDouble(ctx context.Context, f feature.Feature) (float64, error) {
	v, err := parameter[feature.DoubleValue](p, f)
	return float64(v), err
}

// raw returns the template's default value for key, or false when the
// in-app default applies.
func (p *FirebaseProvider) raw(key string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.template == nil {
		return "", false
	}

	path := "parameters." + gjson.Escape(key) + ".defaultValue"
	dv := gjson.GetBytes(p.template, path)
	if !dv.Exists() {
		// Parameters may also live inside named parameter groups.
		gjson.GetBytes(p.template, "parameterGroups").ForEach(func(_, group gjson.Result) bool {
			dv = group.Get(path)
			return !dv.Exists()
		})
	}
	if !dv.Exists() || dv.Get("useInAppDefault").Bool() {
		return "", false
	}
	v := dv.Get("value")
	if !v.Exists() {
		return "", false
	}
	return v.String(), true
}

func parameter[T feature.Value](p *FirebaseProvider, f feature.Feature) (T, error) {
	var zero T
	raw, ok := p.raw(f.Key())
	if !ok {
		v, ok := f.Default().(T)
		if !ok {
			return zero, errors.Join(ErrRemoteValueType,
				fmt.Errorf("feature %q defaults to %s, requested %s", f.Key(), typeOf(f.Default()), zero.Type()))
		}
		return v, nil
	}

	v, err := parseTemplateValue(zero.Type(), raw)
	if err != nil {
		return zero, errors.Join(ErrRemoteValueType, fmt.Errorf("parameter %q: %w", f.Key(), err))
	}
	return v.(T), nil
}

// parseTemplateValue reads booleans with the vocabulary of the Firebase client
// SDKs ("1", "yes", "on", ...). Other types parse as usual.
func parseTemplateValue(t feature.ValueType, raw string) (feature.Value, error) {
	if t != feature.TypeBoolean {
		return feature.ParseValue(t, raw)
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "t", "yes", "y", "on":
		return feature.BooleanValue(true), nil
	case "0", "false", "f", "no", "n", "off":
		return feature.BooleanValue(false), nil
	}
	return nil, errors.Join(feature.ErrInvalidValue, fmt.Errorf("%q is not a valid boolean", raw))
}
