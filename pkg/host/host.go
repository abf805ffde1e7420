// Package host defines the seam between the reconciler and a mutable host tree.
//
// The reconciler never touches host nodes directly. Every mutation goes
// through an Adapter, which is provided by the embedding platform (a DOM
// bridge, a terminal UI, an in-memory document for tests ...).
package host

// Node is an opaque handle to a node of the host tree.
//
// Nodes are compared with == and used as map keys, so adapters must hand out
// comparable handles (typically pointers).
type Node any

// Adapter exposes the primitive host-tree operations.
// All operations are synchronous and assumed infallible.
type Adapter interface {
	// CreateNode creates a detached node for tag.
	CreateNode(tag string) Node

	// SetProperty sets a named property on node.
	SetProperty(node Node, name string, value any)

	// RemoveProperty removes a named property from node.
	RemoveProperty(node Node, name string)

	// AppendChild appends child as the last child of parent.
	AppendChild(parent, child Node)

	// RemoveChild detaches child from parent.
	RemoveChild(parent, child Node)

	// ReplaceChild puts newChild in the position of oldChild under parent.
	ReplaceChild(parent, oldChild, newChild Node)

	// ClearChildren detaches every child of parent.
	ClearChildren(parent Node)
}
