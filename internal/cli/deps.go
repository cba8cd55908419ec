package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/proteus/pkg/console"
	"github.com/dmitrymomot/proteus/pkg/logger"
)

// Dependencies holds what the commands need to run.
type Dependencies struct {
	Book        console.Book
	Logger      *slog.Logger
	ConsoleAddr string
}

type depsKey string

const dependenciesKey depsKey = "dependencies"

// WithDependencies attaches deps to ctx for the commands to pick up.
func WithDependencies(ctx context.Context, deps *Dependencies) context.Context {
	return context.WithValue(ctx, dependenciesKey, deps)
}

// getDeps extracts Dependencies from command context
func getDeps(cmd *cobra.Command) (*Dependencies, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New("dependencies not initialized")
	}
	deps, ok := ctx.Value(dependenciesKey).(*Dependencies)
	if !ok || deps == nil || deps.Book == nil {
		return nil, errors.New("dependencies not initialized")
	}
	deps.Logger = logger.OrDiscard(deps.Logger)
	return deps, nil
}
