// Package featurenote assembles the editor view of the feature catalog.
//
// For every catalog feature Repository produces a Note holding the remote
// value (as a string), the label of the remote provider and the local override,
// if one of the feature's type is stored. The repository also writes overrides
// back, checking that each value matches the feature's declared type.
//
// State models the load lifecycle (Loading, then Loaded or Error) and Search
// filters notes by key or description, reporting rune-offset highlight ranges.
package featurenote
