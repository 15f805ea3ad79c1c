package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/navio-dev/navio/pkg/nav"
)

// Default tracer name for navio applications.
const defaultTracerName = "navio"

// TraceConfig configures the OpenTelemetry wrapper.
type TraceConfig struct {
	// TracerName is the name of the tracer (default: "navio").
	TracerName string

	// IncludeURL includes the requested URL in spans. URLs can carry
	// sensitive query parameters - enabled by default, disable when in
	// doubt.
	IncludeURL bool

	tracer trace.Tracer
}

// TraceOption configures the OpenTelemetry wrapper.
type TraceOption func(*TraceConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TraceOption {
	return func(c *TraceConfig) {
		c.TracerName = name
	}
}

// WithIncludeURL enables or disables URL attributes on spans.
func WithIncludeURL(include bool) TraceOption {
	return func(c *TraceConfig) {
		c.IncludeURL = include
	}
}

// Trace decorates a History so every capability call produces a span.
func Trace(h nav.History, opts ...TraceOption) nav.History {
	config := TraceConfig{
		TracerName: defaultTracerName,
		IncludeURL: true,
	}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return &tracedHistory{inner: h, config: config}
}

type tracedHistory struct {
	inner  nav.History
	config TraceConfig
}

func (th *tracedHistory) start(name string, attrs ...attribute.KeyValue) trace.Span {
	_, span := th.config.tracer.Start(context.Background(), name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...))
	return span
}

func (th *tracedHistory) urlAttrs(url string) []attribute.KeyValue {
	if !th.config.IncludeURL {
		return nil
	}
	return []attribute.KeyValue{attribute.String("nav.url", url)}
}

func (th *tracedHistory) Location() nav.Location {
	return th.inner.Location()
}

func (th *tracedHistory) PushURL(url string) nav.Location {
	span := th.start("nav.push", th.urlAttrs(url)...)
	defer span.End()

	loc := th.inner.PushURL(url)
	if th.config.IncludeURL {
		span.SetAttributes(attribute.String("nav.result_href", loc.Href))
	}
	return loc
}

func (th *tracedHistory) ReplaceURL(url string) nav.Location {
	span := th.start("nav.replace", th.urlAttrs(url)...)
	defer span.End()

	loc := th.inner.ReplaceURL(url)
	if th.config.IncludeURL {
		span.SetAttributes(attribute.String("nav.result_href", loc.Href))
	}
	return loc
}

func (th *tracedHistory) Go(n int) {
	span := th.start("nav.go", attribute.Int("nav.steps", n))
	defer span.End()

	th.inner.Go(n)
}

func (th *tracedHistory) Notifications() <-chan struct{} {
	return th.inner.Notifications()
}
