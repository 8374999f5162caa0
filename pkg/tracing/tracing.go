// Package tracing reports reactivity engine activity as OpenTelemetry
// spans. Engine callbacks arrive after the work is done, so every span is
// back-dated to cover the measured duration.
package tracing

import (
	"context"
	"time"

	"github.com/delaneyj/signalgraph/reactivity"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "signalgraph/reactivity"

// Config configures the OpenTelemetry instrument.
type Config struct {
	// TracerName is the name of the tracer (default: "signalgraph/reactivity").
	TracerName string

	// TracerProvider provides the tracer. If nil, the global provider is used.
	TracerProvider trace.TracerProvider

	// Parent is the context spans are started from (default: background).
	Parent context.Context

	// Computeds enables a span per computed evaluation. Disabled by default;
	// large graphs evaluate far more computeds than they run effects.
	Computeds bool
}

type Option func(*Config)

func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

func WithParent(ctx context.Context) Option {
	return func(c *Config) {
		c.Parent = ctx
	}
}

func WithComputedSpans(enabled bool) Option {
	return func(c *Config) {
		c.Computeds = enabled
	}
}

func defaultConfig() Config {
	return Config{
		TracerName: defaultTracerName,
		Parent:     context.Background(),
	}
}

// Instrument is a reactivity.Instrument that emits one span per effect run
// and batch drain.
type Instrument struct {
	tracer    trace.Tracer
	parent    context.Context
	computeds bool
	now       func() time.Time
}

var _ reactivity.Instrument = (*Instrument)(nil)

func New(opts ...Option) *Instrument {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	var tracer trace.Tracer
	if config.TracerProvider != nil {
		tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		tracer = otel.Tracer(config.TracerName)
	}
	return &Instrument{
		tracer:    tracer,
		parent:    config.Parent,
		computeds: config.Computeds,
		now:       time.Now,
	}
}

func (in *Instrument) span(name string, d time.Duration, err error, attrs ...attribute.KeyValue) {
	end := in.now()
	_, span := in.tracer.Start(
		in.parent,
		name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
		trace.WithTimestamp(end.Add(-d)),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(end))
}

func (in *Instrument) EffectRan(d time.Duration, err error) {
	in.span("reactivity.effect", d, err)
}

func (in *Instrument) ComputedRefreshed(changed bool, d time.Duration) {
	if !in.computeds {
		return
	}
	in.span("reactivity.computed", d, nil, attribute.Bool("reactivity.changed", changed))
}

func (in *Instrument) BatchFlushed(triggered int, d time.Duration, err error) {
	in.span("reactivity.batch", d, err, attribute.Int("reactivity.triggered", triggered))
}
