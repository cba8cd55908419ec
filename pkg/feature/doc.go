// Package feature defines the vocabulary shared by every Proteus component:
// feature descriptors, typed config values and the Provider interface.
//
// # Architecture
//
// The package is built around three core concepts:
//
// 1. Feature - an immutable descriptor (key, default value, owner, description)
// 2. Value - a sealed union over long, double, text and boolean primitives
// 3. Provider - anything able to resolve a typed value for a feature
//
// The value type of a feature is carried explicitly as a ValueType tag derived
// from its default value, so dispatch is a plain switch rather than runtime
// type inspection.
//
// # Usage
//
//	import "github.com/dmitrymomot/proteus/pkg/feature"
//
//	darkMode := feature.MustNew("dark_mode", feature.BooleanValue(false),
//		feature.WithOwner("firebase"),
//		feature.WithDescription("Enable the dark theme"),
//	)
//
//	enabled, err := provider.GetBoolean(ctx, darkMode)
//	if err != nil {
//		// Handle error
//	}
//
// ValueOf calls the getter matching the declared type and returns the wrapped value:
//
//	v, err := feature.ValueOf(ctx, provider, darkMode)
//	fmt.Println(v.Type(), v) // boolean false
//
// Raw strings (catalog defaults, CLI input) are converted with ParseValue:
//
//	v, err := feature.ParseValue(feature.TypeLong, "42") // feature.LongValue(42)
//
// # Error Handling
//
// The package defines sentinel errors that can be checked using errors.Is:
//
//	if errors.Is(err, feature.ErrInvalidValue) {
//		// Raw value does not match the declared type
//	}
package feature
