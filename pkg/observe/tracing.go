package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/reconciler/pkg/element"
	"github.com/vango-dev/reconciler/pkg/reconcile"
)

// Default tracer name for reconciler spans.
const defaultTracerName = "reconcile"

// TracerConfig configures the OpenTelemetry observer.
type TracerConfig struct {
	// TracerName is the name of the tracer (default: "reconcile").
	TracerName string

	// Tracer overrides the tracer resolved from the global provider.
	Tracer trace.Tracer

	// Context is the parent context of every root span
	// (default: context.Background()).
	Context context.Context

	// InstanceEvents records one span event per instance transition.
	// Enabled by default.
	InstanceEvents bool
}

// TracerOption configures the OpenTelemetry observer.
type TracerOption func(*TracerConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) {
		c.TracerName = name
	}
}

// WithTracer sets the tracer directly, bypassing the global provider.
func WithTracer(tracer trace.Tracer) TracerOption {
	return func(c *TracerConfig) {
		c.Tracer = tracer
	}
}

// WithParentContext sets the context root spans are started from.
func WithParentContext(ctx context.Context) TracerOption {
	return func(c *TracerConfig) {
		c.Context = ctx
	}
}

// WithInstanceEvents enables or disables per-instance span events.
func WithInstanceEvents(enabled bool) TracerOption {
	return func(c *TracerConfig) {
		c.InstanceEvents = enabled
	}
}

func defaultTracerConfig() TracerConfig {
	return TracerConfig{
		TracerName:     defaultTracerName,
		Context:        context.Background(),
		InstanceEvents: true,
	}
}

// Tracer is a reconcile.Observer that wraps each root-level operation in a
// span. Instance transitions become span events and the number of applied
// host operations is recorded as a span attribute.
//
// The tracer uses the global OpenTelemetry tracer provider unless WithTracer
// is given. Configure the provider before mounting:
//
//	provider, _ := observe.NewProvider(observe.ProviderConfig{Enabled: true, Exporter: "stdout"})
//	defer provider.Shutdown(ctx)
//	otel.SetTracerProvider(provider.TracerProvider())
type Tracer struct {
	config TracerConfig
	tracer trace.Tracer

	mu      sync.Mutex
	current *treeSpan
}

type treeSpan struct {
	span    trace.Span
	hostOps int
	events  int
	parent  *treeSpan
}

// NewTracer creates the OpenTelemetry observer.
func NewTracer(opts ...TracerOption) *Tracer {
	config := defaultTracerConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Context == nil {
		config.Context = context.Background()
	}

	tracer := config.Tracer
	if tracer == nil {
		tracer = otel.Tracer(config.TracerName)
	}
	return &Tracer{config: config, tracer: tracer}
}

// TreeStarted implements reconcile.Observer.
func (t *Tracer) TreeStarted(op reconcile.TreeOp, rootType string) func(error) {
	_, span := t.tracer.Start(t.config.Context, "reconcile."+op.String(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("reconcile.op", op.String()),
			attribute.String("reconcile.root_type", rootType),
		),
	)

	t.mu.Lock()
	ts := &treeSpan{span: span, parent: t.current}
	t.current = ts
	t.mu.Unlock()

	return func(err error) {
		t.mu.Lock()
		t.current = ts.parent
		t.mu.Unlock()

		span.SetAttributes(
			attribute.Int("reconcile.host_operations", ts.hostOps),
			attribute.Int("reconcile.instance_events", ts.events),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if code := errorCode(err); code != "internal" {
				span.SetAttributes(attribute.String("reconcile.error_code", code))
			}
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}

// InstanceChanged implements reconcile.Observer.
func (t *Tracer) InstanceChanged(ev reconcile.LifecycleEvent, kind element.Kind, typeName string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return
	}
	t.current.events++
	if t.config.InstanceEvents {
		t.current.span.AddEvent(ev.String(), trace.WithAttributes(
			attribute.String("reconcile.kind", kind.String()),
			attribute.String("reconcile.type", typeName),
		))
	}
}

// OperationApplied implements reconcile.Observer.
func (t *Tracer) OperationApplied(reconcile.OpKind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current != nil {
		t.current.hostOps++
	}
}
