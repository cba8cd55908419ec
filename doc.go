// Package proteus resolves feature flags with local overrides layered on top
// of remote configuration.
//
// A feature is declared once with a key, a typed default and the owner of the
// remote service that backs it. Reads first consult the override store ("mock
// config") and fall back to the owner's remote provider when no override of the
// declared type exists. Overrides are edited through the CLI or the HTTP
// console and persist in a pluggable store.
//
// Key Features:
//
//   - Typed getters for long, double, text and boolean features
//   - Override storage on memory, file, Redis, Postgres or MongoDB
//   - Remote providers per owner (in-memory rules, Firebase Remote Config)
//   - Feature catalog from JSON or YAML files, embedded FS or S3
//   - Explicit builder instead of a global container
//
// Basic Usage:
//
//	factory := remote.NewFactory(
//		remote.WithProvider("firebase", "firebase", firebaseProvider),
//		remote.WithDefaultOwner("firebase"),
//	)
//
//	p, err := proteus.New(
//		proteus.WithRemoteFactory(factory),
//		proteus.WithStorage(store),
//		proteus.WithLogger(log),
//	)
//	if err != nil {
//		// handle error
//	}
//	defer p.Close()
//
//	checkout := feature.MustNew("new_checkout", feature.BooleanValue(false))
//	enabled, err := p.GetBoolean(ctx, checkout)
//
// Environment-driven setup:
//
//	var cfg proteus.Config
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//	p, err := proteus.Open(ctx, cfg)
//
// New fails with ErrRemoteFactoryNotRegistered when no remote factory is
// given; MustNew panics instead.
package proteus
