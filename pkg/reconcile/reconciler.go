package reconcile

import (
	"log/slog"

	"github.com/vango-dev/reconciler/pkg/element"
	"github.com/vango-dev/reconciler/pkg/host"
)

// Reconciler creates instances bound to one host adapter.
type Reconciler struct {
	host     host.Adapter
	logger   *slog.Logger
	observer Observer
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver sets the observer notified of reconciliation events.
func WithObserver(o Observer) Option {
	return func(r *Reconciler) {
		if o != nil {
			r.observer = o
		}
	}
}

// New creates a Reconciler that mutates the host tree through adapter.
func New(adapter host.Adapter, opts ...Option) *Reconciler {
	r := &Reconciler{
		host:     adapter,
		logger:   slog.Default(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Adapter returns the host adapter.
func (r *Reconciler) Adapter() host.Adapter {
	return r.host
}

// Instantiate allocates the instance variant for el.
// It has no host-tree side effects and invokes no lifecycle hooks.
func (r *Reconciler) Instantiate(el element.Element) (Instance, error) {
	switch kind := el.Kind(); kind {
	case element.KindHost:
		return &hostInstance{r: r, current: el}, nil
	case element.KindStateful, element.KindFunctional:
		return &compositeInstance{r: r, current: el, kind: kind}, nil
	default:
		return nil, ErrInvalidElementType.WithDetail("%T %s", el.Type, element.TypeName(el.Type))
	}
}

// mountNew instantiates and mounts el.
func (r *Reconciler) mountNew(el element.Element) (Instance, host.Node, error) {
	inst, err := r.Instantiate(el)
	if err != nil {
		return nil, nil, err
	}
	node, err := inst.Mount()
	if err != nil {
		return nil, nil, err
	}
	return inst, node, nil
}

func (r *Reconciler) changed(ev LifecycleEvent, inst Instance) {
	el := inst.Element()
	r.observer.InstanceChanged(ev, inst.Kind(), element.TypeName(el.Type))
}
