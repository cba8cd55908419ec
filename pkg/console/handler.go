package console

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/proteus/pkg/feature"
	"github.com/dmitrymomot/proteus/pkg/featurenote"
	"github.com/dmitrymomot/proteus/pkg/logger"
)

// Book is the feature book the console reads and edits.
type Book interface {
	GetFeatureBook(ctx context.Context) ([]featurenote.Note, error)
	GetFeatureNote(ctx context.Context, key string) (featurenote.Note, error)
	GetFeature(ctx context.Context, key string) (feature.Feature, error)
	SaveMockedConfigString(ctx context.Context, f feature.Feature, raw string) error
	RemoveMockedConfig(ctx context.Context, f feature.Feature) error
	ClearMockedConfigs(ctx context.Context) error
}

type Option func(*handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *handler) {
		h.logger = logger.OrDiscard(l)
	}
}

type handler struct {
	book   Book
	logger *slog.Logger
}

// NewHandler returns the JSON API for browsing features and editing overrides.
func NewHandler(book Book, opts ...Option) http.Handler {
	h := &handler{book: book, logger: logger.Discard()}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With(logger.Component("console"))

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/features", func(r chi.Router) {
		r.Get("/", h.listFeatures)
		r.Route("/{key}", func(r chi.Router) {
			r.Get("/", h.getFeature)
			r.Put("/override", h.setOverride)
			r.Delete("/override", h.removeOverride)
		})
	})
	r.Delete("/overrides", h.clearOverrides)

	return r
}

type noteResponse struct {
	Key            string              `json:"key"`
	Type           string              `json:"type"`
	Owner          string              `json:"owner,omitempty"`
	Description    string              `json:"description,omitempty"`
	Provider       string              `json:"provider"`
	DefaultValue   string              `json:"default_value"`
	RemoteValue    string              `json:"remote_value"`
	LocalValue     *string             `json:"local_value"`
	OverrideActive bool                `json:"override_active"`
	EffectiveValue string              `json:"effective_value"`
	KeyRanges      []featurenote.Range `json:"key_ranges,omitempty"`
	DescRanges     []featurenote.Range `json:"description_ranges,omitempty"`
}

func newNoteResponse(n featurenote.Note) noteResponse {
	resp := noteResponse{
		Key:            n.Feature.Key(),
		Type:           n.Feature.Type().String(),
		Owner:          n.Feature.Owner(),
		Description:    n.Feature.Description(),
		Provider:       n.ProviderTag,
		DefaultValue:   n.Feature.Default().String(),
		RemoteValue:    n.RemoteValue,
		OverrideActive: n.IsOverrideActivated(),
		EffectiveValue: n.EffectiveValue(),
	}
	if n.LocalValue != nil {
		local := n.LocalValue.String()
		resp.LocalValue = &local
	}
	return resp
}

type bookResponse struct {
	Status   featurenote.Status `json:"status"`
	Error    string             `json:"error,omitempty"`
	Query    string             `json:"query,omitempty"`
	Features []noteResponse     `json:"features"`
}

func (h *handler) listFeatures(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	state := featurenote.Load(r.Context(), h.book.GetFeatureBook)

	resp := bookResponse{
		Status:   state.Status,
		Error:    state.Message,
		Query:    query,
		Features: []noteResponse{},
	}
	if state.Status == featurenote.StatusError {
		h.logger.ErrorContext(r.Context(), "feature book load failed",
			slog.String("error", state.Message), slog.String("request_id", middleware.GetReqID(r.Context())))
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	for _, m := range featurenote.Search(state.Notes, query) {
		n := newNoteResponse(m.Note)
		n.KeyRanges, n.DescRanges = m.KeyRanges, m.DescriptionRanges
		resp.Features = append(resp.Features, n)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) getFeature(w http.ResponseWriter, r *http.Request) {
	note, err := h.book.GetFeatureNote(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newNoteResponse(note))
}

type overrideRequest struct {
	Value *string `json:"value"`
}

func (h *handler) setOverride(w http.ResponseWriter, r *http.Request) {
	var req overrideRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil || req.Value == nil {
		writeError(w, http.StatusBadRequest, `request body must be {"value": "..."}`)
		return
	}

	key := chi.URLParam(r, "key")
	f, err := h.book.GetFeature(r.Context(), key)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.book.SaveMockedConfigString(r.Context(), f, *req.Value); err != nil {
		h.fail(w, r, err)
		return
	}
	h.getFeature(w, r)
}

func (h *handler) removeOverride(w http.ResponseWriter, r *http.Request) {
	f, err := h.book.GetFeature(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.book.RemoveMockedConfig(r.Context(), f); err != nil {
		h.fail(w, r, err)
		return
	}
	h.getFeature(w, r)
}

func (h *handler) clearOverrides(w http.ResponseWriter, r *http.Request) {
	if err := h.book.ClearMockedConfigs(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "console request failed",
			logger.Error(err),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	}
	writeError(w, status, err.Error())
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, featurenote.ErrFeatureNotFound):
		return http.StatusNotFound
	case errors.Is(err, feature.ErrInvalidValue),
		errors.Is(err, featurenote.ErrValueTypeMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
