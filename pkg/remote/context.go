package remote

import (
	"context"
	"log/slog"
)

type (
	instanceIDKey  struct{}
	groupsKey      struct{}
	environmentKey struct{}
)

// WithInstanceID attaches the id of the running app instance used by targeted
// conditions and percentage rollouts.
func WithInstanceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, instanceIDKey{}, id)
}

// InstanceID returns the instance id from ctx, or "".
func InstanceID(ctx context.Context) string {
	id, _ := ctx.Value(instanceIDKey{}).(string)
	return id
}

// WithGroups attaches audience groups to ctx.
func WithGroups(ctx context.Context, groups ...string) context.Context {
	return context.WithValue(ctx, groupsKey{}, groups)
}

func Groups(ctx context.Context) []string {
	groups, _ := ctx.Value(groupsKey{}).([]string)
	return groups
}

// WithEnvironment attaches the deployment environment name (e.g. "staging").
func WithEnvironment(ctx context.Context, env string) context.Context {
	return context.WithValue(ctx, environmentKey{}, env)
}

func Environment(ctx context.Context) string {
	env, _ := ctx.Value(environmentKey{}).(string)
	return env
}

// LoggerExtractor returns a logger context extractor for the instance id.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := InstanceID(ctx); id != "" {
			return slog.String("instance_id", id), true
		}
		return slog.Attr{}, false
	}
}
