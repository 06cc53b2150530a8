package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vdiff/pkg/vdom"
)

// Default tracer name.
const defaultTracerName = "vdiff"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "vdiff").
	TracerName string

	// TracerProvider supplies the tracer. Defaults to the global provider.
	TracerProvider trace.TracerProvider

	// SpanName is the name of every diff span (default: "vdiff.diff").
	SpanName string

	// CountNodes records the node count of both trees. Counting walks both
	// trees once more; enabled by default.
	CountNodes bool

	// AttributeExtractor adds custom attributes from the call context.
	AttributeExtractor func(ctx context.Context) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithSpanName sets the span name.
func WithSpanName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.SpanName = name
	}
}

// WithCountNodes enables or disables node counting.
func WithCountNodes(count bool) OTelOption {
	return func(c *OTelConfig) {
		c.CountNodes = count
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ctx context.Context) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
		SpanName:   "vdiff.diff",
		CountNodes: true,
	}
}

// OpenTelemetry creates middleware that traces every diff.
//
// Each span carries:
//   - vdiff.old_nodes and vdiff.new_nodes: tree sizes (when CountNodes)
//   - vdiff.patch_count: patches emitted
//   - the error and an Error status when the diff fails
//
// The inner DiffFunc receives the span's context.
func OpenTelemetry(opts ...OTelOption) Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(config.TracerName)

	return func(next DiffFunc) DiffFunc {
		return func(ctx context.Context, prev, nextTree vdom.Node) ([]vdom.Patch, error) {
			var attrs []attribute.KeyValue
			if config.CountNodes {
				attrs = append(attrs,
					attribute.Int("vdiff.old_nodes", vdom.CountNodes(prev)),
					attribute.Int("vdiff.new_nodes", vdom.CountNodes(nextTree)),
				)
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(ctx)...)
			}

			spanCtx, span := tracer.Start(ctx, config.SpanName,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			patches, err := next(spanCtx, prev, nextTree)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return nil, err
			}
			span.SetAttributes(attribute.Int("vdiff.patch_count", len(patches)))
			span.SetStatus(codes.Ok, "")
			return patches, nil
		}
	}
}
