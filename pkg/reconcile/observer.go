package reconcile

import "github.com/vango-dev/reconciler/pkg/element"

// TreeOp is a root-level operation of the Manager.
type TreeOp uint8

const (
	TreeMount   TreeOp = iota + 1 // Fresh root mounted into a container
	TreeUpdate                    // Existing root received a new element
	TreeUnmount                   // Root unmounted and removed
)

// String returns the string representation of the TreeOp.
func (op TreeOp) String() string {
	switch op {
	case TreeMount:
		return "mount"
	case TreeUpdate:
		return "update"
	case TreeUnmount:
		return "unmount"
	default:
		return "unknown"
	}
}

// LifecycleEvent is an instance lifecycle transition.
type LifecycleEvent uint8

const (
	EventMount LifecycleEvent = iota + 1
	EventReceive
	EventUnmount
)

// String returns the string representation of the LifecycleEvent.
func (ev LifecycleEvent) String() string {
	switch ev {
	case EventMount:
		return "mount"
	case EventReceive:
		return "receive"
	case EventUnmount:
		return "unmount"
	default:
		return "unknown"
	}
}

// Observer receives reconciliation events. Implementations must be cheap;
// they run inline with reconciliation.
type Observer interface {
	// TreeStarted is called when a root-level operation begins. The returned
	// function is called with the operation's result.
	TreeStarted(op TreeOp, rootType string) func(err error)

	// InstanceChanged is called after an instance completes a transition.
	InstanceChanged(ev LifecycleEvent, kind element.Kind, typeName string)

	// OperationApplied is called for each queued host-children operation
	// after it has been applied.
	OperationApplied(op OpKind)
}

// Observers combines several observers into one.
func Observers(observers ...Observer) Observer {
	out := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

type multiObserver []Observer

func (m multiObserver) TreeStarted(op TreeOp, rootType string) func(err error) {
	dones := make([]func(error), 0, len(m))
	for _, o := range m {
		if done := o.TreeStarted(op, rootType); done != nil {
			dones = append(dones, done)
		}
	}
	return func(err error) {
		for _, done := range dones {
			done(err)
		}
	}
}

func (m multiObserver) InstanceChanged(ev LifecycleEvent, kind element.Kind, typeName string) {
	for _, o := range m {
		o.InstanceChanged(ev, kind, typeName)
	}
}

func (m multiObserver) OperationApplied(op OpKind) {
	for _, o := range m {
		o.OperationApplied(op)
	}
}

type nopObserver struct{}

func (nopObserver) TreeStarted(TreeOp, string) func(error)                 { return func(error) {} }
func (nopObserver) InstanceChanged(LifecycleEvent, element.Kind, string) {}
func (nopObserver) OperationApplied(OpKind)                              {}
