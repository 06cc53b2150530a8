package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/vdiff/pkg/vdom"
)

// DiffFunc computes the patches that turn prev into next.
type DiffFunc func(ctx context.Context, prev, next vdom.Node) ([]vdom.Patch, error)

// Middleware decorates a DiffFunc.
type Middleware func(next DiffFunc) DiffFunc

// Chain wraps base in mws. The first middleware is the outermost, so it
// sees the call first and the result last.
func Chain(base DiffFunc, mws ...Middleware) DiffFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}
	return base
}

// Engine returns the diff engine as a DiffFunc. Invariant violations in the
// input trees come back as errors rather than panics. A context that is
// already done stops the diff before it starts.
func Engine(opts vdom.Options) DiffFunc {
	return func(ctx context.Context, prev, next vdom.Node) ([]vdom.Patch, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return vdom.TryDiff(prev, next, opts)
	}
}

// Logging logs every diff at debug level and every failure at error level.
func Logging(logger *slog.Logger) Middleware {
	return func(next DiffFunc) DiffFunc {
		return func(ctx context.Context, prev, nextTree vdom.Node) ([]vdom.Patch, error) {
			start := time.Now()
			patches, err := next(ctx, prev, nextTree)
			if err != nil {
				logger.ErrorContext(ctx, "diff failed",
					"error", err,
					"duration", time.Since(start),
				)
				return nil, err
			}
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.DebugContext(ctx, "diff",
					"old_nodes", vdom.CountNodes(prev),
					"new_nodes", vdom.CountNodes(nextTree),
					"patches", len(patches),
					"duration", time.Since(start),
				)
			}
			return patches, nil
		}
	}
}
