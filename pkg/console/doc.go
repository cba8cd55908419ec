// Package console exposes the feature book over a small JSON HTTP API built on chi.
//
// Routes:
//
//	GET    /health
//	GET    /features?q=<query>        all notes, filtered and highlighted by query
//	GET    /features/{key}            one note
//	PUT    /features/{key}/override   body {"value": "..."}, parsed as the feature's type
//	DELETE /features/{key}/override
//	DELETE /overrides                 remove every override
//
// Failures are returned as {"error": "..."} with 404 for unknown features,
// 400 for values that do not parse as the feature's type and 500 otherwise.
//
// Run serves a handler until its context is cancelled and shuts down gracefully.
package console
