// Package logger builds log/slog loggers for proteus binaries and libraries.
//
// New returns a *slog.Logger configured by functional options:
//
//   - WithEnvironment picks defaults per deployment (debug text in development,
//     info JSON in staging and production).
//   - WithConfig applies the PROTEUS_LOG_LEVEL / PROTEUS_LOG_FORMAT values loaded
//     into Config.
//   - WithLevel, WithFormat and WithOutput override single settings.
//   - WithAttr adds static attributes.
//   - WithContextExtractors and WithContextValue inject attributes taken from
//     the context of each record.
//
// Library packages never create loggers on their own: they accept a
// *slog.Logger and fall back to Discard via OrDiscard.
//
// Attribute helpers keep key names consistent across packages:
//
//	log.DebugContext(ctx, "feature resolved",
//		logger.FeatureKey(f.Key()),
//		logger.Source(src),
//		logger.Value(v),
//	)
//
// Error returns an empty attribute for a nil error, so it can be passed
// unconditionally.
package logger
