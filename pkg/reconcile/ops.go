package reconcile

import "github.com/vango-dev/reconciler/pkg/host"

// OpKind is the type of a queued host-children operation.
type OpKind uint8

const (
	OpAdd     OpKind = iota + 1 // Append a new child node
	OpReplace                   // Swap an existing child node for a new one
	OpRemove                    // Detach an existing child node
)

// String returns the string representation of the OpKind.
func (op OpKind) String() string {
	switch op {
	case OpAdd:
		return "ADD"
	case OpReplace:
		return "REPLACE"
	case OpRemove:
		return "REMOVE"
	default:
		return "UNKNOWN"
	}
}

// operation is one queued mutation of a parent's child list.
type operation struct {
	kind OpKind
	node host.Node // ADD/REMOVE target, REPLACE new node
	prev host.Node // REPLACE old node
}

// opQueue collects child operations during a diff pass. Applying is
// deferred until every lookup of the pass has been made.
type opQueue []operation

func (q *opQueue) add(node host.Node) {
	*q = append(*q, operation{kind: OpAdd, node: node})
}

func (q *opQueue) replace(prev, next host.Node) {
	*q = append(*q, operation{kind: OpReplace, node: next, prev: prev})
}

func (q *opQueue) remove(node host.Node) {
	*q = append(*q, operation{kind: OpRemove, node: node})
}

// apply runs the queued operations against parent in enqueue order.
func (q opQueue) apply(r *Reconciler, parent host.Node) {
	for _, op := range q {
		switch op.kind {
		case OpAdd:
			r.host.AppendChild(parent, op.node)
		case OpReplace:
			r.host.ReplaceChild(parent, op.prev, op.node)
		case OpRemove:
			r.host.RemoveChild(parent, op.node)
		}
		r.observer.OperationApplied(op.kind)
	}
}
