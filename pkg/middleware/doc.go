// Package middleware wraps the diff engine with cross-cutting concerns.
//
// A DiffFunc computes the patches between two trees. Middleware decorates
// a DiffFunc and Chain stacks several of them around the engine:
//
//	diff := middleware.Chain(
//	    middleware.Engine(vdom.Options{MaxDepth: 64}),
//	    middleware.Logging(logger),
//	    middleware.Prometheus(middleware.WithRegistry(reg)),
//	    middleware.OpenTelemetry(middleware.WithTracerName("renderer")),
//	)
//	patches, err := diff(ctx, prev, next)
//
// The first middleware given to Chain is the outermost.
//
// # Prometheus Metrics
//
//   - vdiff_diffs_total: diffs computed, by status
//   - vdiff_diff_duration_seconds: diff duration histogram
//   - vdiff_patches_total: patches emitted, by operation
//   - vdiff_diff_errors_total: failed diffs, by error code
//
// # OpenTelemetry
//
// OpenTelemetry starts one span per diff carrying the node counts of both
// trees and the number of patches emitted. The span is a child of any span
// already in the context.
package middleware
