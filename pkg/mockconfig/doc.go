// Package mockconfig turns stored overrides into typed feature values.
//
// Repository reads the override for a feature from a mockstore.Storage,
// dispatching on the feature's declared ValueType. Provider builds on it with
// explicit presence lookups (LookupBoolean, LookupString, LookupLong,
// LookupDouble) returning (value, ok, err): ok is false when nothing is stored,
// when the stored entry has another type, or when the requested variant does not
// match. Only storage failures surface as errors.
//
// Provider also satisfies feature.Provider for standalone use; its getters
// return ErrMockConfigUnavailable whenever the lookup is not ok.
//
//	repo := mockconfig.NewRepository(store)
//	overrides := mockconfig.NewProvider(repo)
//
//	if v, ok, err := overrides.LookupBoolean(ctx, darkMode); err != nil {
//		// storage failure
//	} else if ok {
//		// local override wins
//	}
package mockconfig
