// Package resolver combines local overrides and remote providers into a single
// feature.Provider.
//
// For every lookup the override layer is asked first. A usable override (one
// of the requested type) is returned as is; otherwise the request is handed to
// the remote provider selected for the feature. Errors from either layer are
// returned unchanged and values are never memoized, so a saved or removed
// override takes effect on the next call.
package resolver
