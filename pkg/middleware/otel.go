package middleware

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wayfind-dev/wayfind/pkg/navigator"
)

// Default tracer name for navigation spans.
const defaultTracerName = "wayfind"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "wayfind").
	TracerName string

	// IncludeParams includes resolved route params in spans.
	// May contain sensitive information - disabled by default.
	IncludeParams bool

	// Filter determines which navigations to trace.
	// Return true to trace the navigation, false to skip.
	// If nil, all navigations are traced.
	Filter func(ev *navigator.Event) bool

	// AttributeExtractor extracts custom attributes from the event.
	// Called for each traced navigation before the chain continues.
	AttributeExtractor func(ev *navigator.Event) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeParams enables including resolved params in spans.
func WithIncludeParams(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeParams = include
	}
}

// WithNavigationFilter sets a filter function for navigations.
func WithNavigationFilter(filter func(ev *navigator.Event) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ev *navigator.Event) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:    defaultTracerName,
		IncludeParams: false,
		Filter:        nil,
	}
}

// OpenTelemetry creates middleware that traces every navigation.
//
// The middleware:
//   - Creates a span per navigation named after the operation and path
//   - Replaces the event context so the host mount runs inside the span
//   - Records errors and sets span status
//   - Records the resolved route id and history depth as attributes
//
// Example:
//
//	nav := navigator.New(registry)
//	nav.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	))
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it
// in your main() before navigating:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	    sdktrace.WithResource(resource.NewWithAttributes(
//	        semconv.SchemaURL,
//	        semconv.ServiceName("my-app"),
//	    )),
//	)
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) navigator.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Resolve tracer from global provider
	config.tracer = otel.Tracer(config.TracerName)

	return navigator.MiddlewareFunc(func(ev *navigator.Event, next func() error) error {
		// Apply filter if configured
		if config.Filter != nil && !config.Filter(ev) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("wayfind.op", ev.Op),
			attribute.String("wayfind.path", ev.Path),
			attribute.Bool("wayfind.replace", ev.Replace),
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(ev)...)
		}

		spanCtx, span := config.tracer.Start(
			ev.Context(),
			formatSpanName(ev),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		// Downstream middleware and the host mount see the span context.
		ev.SetContext(spanCtx)

		err := next()

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		if ev.Route != nil {
			span.SetAttributes(
				attribute.String("wayfind.route", ev.Route.RouteID),
				attribute.Int("wayfind.depth", ev.Depth),
			)
			if config.IncludeParams {
				for name, value := range ev.Route.Params {
					span.SetAttributes(attribute.String(
						"wayfind.param."+name, fmt.Sprintf("%v", value)))
				}
			}
		}

		return err
	})
}

// SpanFromEvent retrieves the current trace span from the event
// context. Returns a no-op span when the navigation is untraced.
//
// Example:
//
//	nav.Use(navigator.MiddlewareFunc(func(ev *navigator.Event, next func() error) error {
//	    middleware.SpanFromEvent(ev).AddEvent("auth checked")
//	    return next()
//	}))
func SpanFromEvent(ev *navigator.Event) trace.Span {
	return trace.SpanFromContext(ev.Context())
}

// formatSpanName creates a span name from the event.
func formatSpanName(ev *navigator.Event) string {
	path := ev.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("nav.%s %s", ev.Op, path)
}
