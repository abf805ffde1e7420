package reconcile

import (
	"github.com/vango-dev/reconciler/pkg/element"
	"github.com/vango-dev/reconciler/pkg/host"
)

// State is the lifecycle state of an instance.
type State uint8

const (
	StateCreated State = iota
	StateMounted
	StateUnmounted
)

// String returns the string representation of the State.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateMounted:
		return "Mounted"
	case StateUnmounted:
		return "Unmounted"
	default:
		return "Unknown"
	}
}

// Instance is the live bookkeeping object behind one mounted element.
type Instance interface {
	// Element returns the element last applied to the instance.
	Element() element.Element

	// Kind reports which variant backs the instance.
	Kind() element.Kind

	// State returns the lifecycle state.
	State() State

	// Mount creates the host subtree and returns its root node.
	// The node is not attached; attaching it is the caller's job.
	Mount() (host.Node, error)

	// Receive updates the instance to next, which must have the same type.
	Receive(next element.Element) error

	// Unmount tears down the subtree. It does not detach the host node.
	Unmount() error

	// HostNode returns the host node at the root of the instance's subtree.
	HostNode() (host.Node, error)

	// PublicInstance returns the externally visible handle: the component
	// for stateful composites, nil for function components, the host node
	// for host instances.
	PublicInstance() any
}

// lifecycle tracks the state of an instance and enforces its ordering.
type lifecycle struct {
	state State
}

func (l *lifecycle) State() State {
	return l.state
}

// beginMount checks that the instance has never been mounted.
func (l *lifecycle) beginMount(el element.Element) error {
	if l.state != StateCreated {
		return ErrLifecycleViolation.WithDetail("mount %s: instance is %s", el, l.state)
	}
	return nil
}

// requireMounted checks that the instance is mounted.
func (l *lifecycle) requireMounted(op string, el element.Element) error {
	if l.state != StateMounted {
		return ErrLifecycleViolation.WithDetail("%s %s: instance is %s", op, el, l.state)
	}
	return nil
}

// checkSameType enforces that an instance's element type never changes.
func checkSameType(cur, next element.Element) error {
	if !element.SameType(cur.Type, next.Type) {
		return ErrLifecycleViolation.WithDetail("receive %s: type changed to %s", cur, next)
	}
	return nil
}

// Children returns the direct child instances of inst: the rendered
// instance of a composite, or the rendered children of a host instance.
func Children(inst Instance) []Instance {
	switch v := inst.(type) {
	case *compositeInstance:
		if v.rendered == nil {
			return nil
		}
		return []Instance{v.rendered}
	case *hostInstance:
		return v.Children()
	default:
		return nil
	}
}

// Walk visits inst and its descendants depth first. fn receives the depth
// of each instance, starting at 0.
func Walk(inst Instance, fn func(inst Instance, depth int)) {
	walk(inst, 0, fn)
}

func walk(inst Instance, depth int, fn func(Instance, int)) {
	fn(inst, depth)
	for _, child := range Children(inst) {
		walk(child, depth+1, fn)
	}
}
