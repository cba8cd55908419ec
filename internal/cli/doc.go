// Package cli implements the proteus command line: browsing the feature
// catalog, editing local overrides and serving the HTTP console.
package cli
