// Package remote provides the remote layer of feature configuration.
//
// A Factory maps config owners to feature.Provider implementations. Features
// name their owner; features without one are routed by key (WithKeyRoute) or
// fall back to WithDefaultOwner. Unknown owners fail with ErrIllegalConfigOwner.
//
//	fb, err := remote.NewFirebaseProvider(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := fb.Fetch(ctx); err != nil {
//		return err
//	}
//
//	factory := remote.NewFactory(
//		remote.WithProvider("firebase", "Firebase Remote Config", fb),
//		remote.WithDefaultOwner("firebase"),
//	)
//
// # Providers
//
// MemoryProvider keeps parameters in memory. A parameter may carry rules
// evaluated in order, each guarded by a Condition: Always, Targeted,
// InEnvironment, or the And/Or composites. Conditions read the audience from
// the context (WithInstanceID, WithGroups, WithEnvironment).
//
// FirebaseProvider downloads the Firebase Remote Config REST template with an
// OAuth2 client and answers from each parameter's default value. Parameters
// that are missing or marked useInAppDefault resolve to the feature's own
// default, as does every read before the first successful Fetch.
//
// Both providers return ErrRemoteValueType when the remote value cannot be
// read as the requested type.
package remote
