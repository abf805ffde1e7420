package memhost

import (
	"fmt"
	"strings"

	"github.com/vango-dev/reconciler/pkg/host"
)

// CallOp is the adapter operation a Call records.
type CallOp uint8

const (
	CallCreateNode CallOp = iota + 1
	CallSetProperty
	CallRemoveProperty
	CallAppendChild
	CallRemoveChild
	CallReplaceChild
	CallClearChildren
)

// String returns the adapter method name.
func (op CallOp) String() string {
	switch op {
	case CallCreateNode:
		return "createNode"
	case CallSetProperty:
		return "setProperty"
	case CallRemoveProperty:
		return "removeProperty"
	case CallAppendChild:
		return "appendChild"
	case CallRemoveChild:
		return "removeChild"
	case CallReplaceChild:
		return "replaceChild"
	case CallClearChildren:
		return "clearChildren"
	default:
		return "unknown"
	}
}

// Call is one recorded adapter call.
type Call struct {
	Op     CallOp
	Tag    string    // CreateNode
	Node   host.Node // CreateNode result, SetProperty/RemoveProperty target
	Parent host.Node // AppendChild/RemoveChild/ReplaceChild/ClearChildren
	Child  host.Node // AppendChild/RemoveChild child, ReplaceChild new child
	Old    host.Node // ReplaceChild old child
	Name   string    // SetProperty/RemoveProperty
	Value  any       // SetProperty
}

// String renders the call in a compact form, e.g. setProperty(div, "id", "a").
func (c Call) String() string {
	switch c.Op {
	case CallCreateNode:
		return fmt.Sprintf("createNode(%q)", c.Tag)
	case CallSetProperty:
		return fmt.Sprintf("setProperty(%s, %q, %q)", label(c.Node), c.Name, propToString(c.Value))
	case CallRemoveProperty:
		return fmt.Sprintf("removeProperty(%s, %q)", label(c.Node), c.Name)
	case CallAppendChild:
		return fmt.Sprintf("appendChild(%s, %s)", label(c.Parent), label(c.Child))
	case CallRemoveChild:
		return fmt.Sprintf("removeChild(%s, %s)", label(c.Parent), label(c.Child))
	case CallReplaceChild:
		return fmt.Sprintf("replaceChild(%s, %s, %s)", label(c.Parent), label(c.Old), label(c.Child))
	case CallClearChildren:
		return fmt.Sprintf("clearChildren(%s)", label(c.Parent))
	default:
		return c.Op.String()
	}
}

func label(n host.Node) string {
	if s, ok := n.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", n)
}

// Sink receives every call as it is recorded.
type Sink func(Call)

// Recorder is a host.Adapter that records every call before forwarding it
// to the wrapped adapter.
type Recorder struct {
	inner host.Adapter
	calls []Call
	sinks []Sink
}

var _ host.Adapter = (*Recorder)(nil)

// NewRecorder wraps inner.
func NewRecorder(inner host.Adapter, sinks ...Sink) *Recorder {
	return &Recorder{inner: inner, sinks: sinks}
}

// Calls returns the recorded calls.
func (r *Recorder) Calls() []Call {
	return r.calls
}

// Reset clears the recorded calls and returns the previous ones.
func (r *Recorder) Reset() []Call {
	calls := r.calls
	r.calls = nil
	return calls
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op CallOp) int {
	n := 0
	for _, c := range r.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Trace returns the calls rendered one per line.
func (r *Recorder) Trace() string {
	return FormatTrace(r.calls)
}

// FormatTrace renders calls one per line.
func FormatTrace(calls []Call) string {
	var b strings.Builder
	for _, c := range calls {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *Recorder) record(c Call) {
	r.calls = append(r.calls, c)
	for _, s := range r.sinks {
		s(c)
	}
}

// CreateNode implements host.Adapter.
func (r *Recorder) CreateNode(tag string) host.Node {
	n := r.inner.CreateNode(tag)
	r.record(Call{Op: CallCreateNode, Tag: tag, Node: n})
	return n
}

// SetProperty implements host.Adapter.
func (r *Recorder) SetProperty(node host.Node, name string, value any) {
	r.inner.SetProperty(node, name, value)
	r.record(Call{Op: CallSetProperty, Node: node, Name: name, Value: value})
}

// RemoveProperty implements host.Adapter.
func (r *Recorder) RemoveProperty(node host.Node, name string) {
	r.inner.RemoveProperty(node, name)
	r.record(Call{Op: CallRemoveProperty, Node: node, Name: name})
}

// AppendChild implements host.Adapter.
func (r *Recorder) AppendChild(parent, child host.Node) {
	r.inner.AppendChild(parent, child)
	r.record(Call{Op: CallAppendChild, Parent: parent, Child: child})
}

// RemoveChild implements host.Adapter.
func (r *Recorder) RemoveChild(parent, child host.Node) {
	r.inner.RemoveChild(parent, child)
	r.record(Call{Op: CallRemoveChild, Parent: parent, Child: child})
}

// ReplaceChild implements host.Adapter.
func (r *Recorder) ReplaceChild(parent, oldChild, newChild host.Node) {
	r.inner.ReplaceChild(parent, oldChild, newChild)
	r.record(Call{Op: CallReplaceChild, Parent: parent, Old: oldChild, Child: newChild})
}

// ClearChildren implements host.Adapter.
func (r *Recorder) ClearChildren(parent host.Node) {
	r.inner.ClearChildren(parent)
	r.record(Call{Op: CallClearChildren, Parent: parent})
}
