// Package memhost is an in-memory host tree.
//
// Document implements host.Adapter over plain Go structs. It is the host used
// by the CLI, the preview server and the tests. Recorder wraps any adapter
// and keeps a trace of every call made through it.
package memhost

import (
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/vango-dev/reconciler/pkg/host"
)

// TextProperty is rendered as the escaped text content of a node.
const TextProperty = "textContent"

// Node is a node of the in-memory tree.
type Node struct {
	ID       uuid.UUID
	Tag      string
	props    map[string]any
	children []*Node
	parent   *Node
}

// Parent returns the parent node, or nil if detached.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Property returns a property value and whether it is set.
func (n *Node) Property(name string) (any, bool) {
	v, ok := n.props[name]
	return v, ok
}

// PropertyNames returns the set property names in sorted order.
func (n *Node) PropertyNames() []string {
	return slices.Sorted(maps.Keys(n.props))
}

// String returns the tag, used in traces.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return n.Tag
}

func (n *Node) indexOf(child *Node) int {
	return slices.Index(n.children, child)
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	if i := p.indexOf(n); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.parent = nil
}

// Document is a host.Adapter over the in-memory tree.
// It is not safe for concurrent use.
type Document struct {
	nodes int
}

var _ host.Adapter = (*Document)(nil)

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// NewContainer creates a detached node to mount trees into.
func (d *Document) NewContainer(tag string) *Node {
	return d.newNode(tag)
}

// Created returns the number of nodes created by the document.
func (d *Document) Created() int {
	return d.nodes
}

func (d *Document) newNode(tag string) *Node {
	d.nodes++
	return &Node{
		ID:    uuid.New(),
		Tag:   tag,
		props: make(map[string]any),
	}
}

// CreateNode implements host.Adapter.
func (d *Document) CreateNode(tag string) host.Node {
	return d.newNode(tag)
}

// SetProperty implements host.Adapter.
func (d *Document) SetProperty(node host.Node, name string, value any) {
	mustNode(node).props[name] = value
}

// RemoveProperty implements host.Adapter.
func (d *Document) RemoveProperty(node host.Node, name string) {
	delete(mustNode(node).props, name)
}

// AppendChild implements host.Adapter. A child that is already attached is
// moved.
func (d *Document) AppendChild(parent, child host.Node) {
	p, c := mustNode(parent), mustNode(child)
	c.detach()
	p.children = append(p.children, c)
	c.parent = p
}

// RemoveChild implements host.Adapter.
func (d *Document) RemoveChild(parent, child host.Node) {
	p, c := mustNode(parent), mustNode(child)
	if c.parent != p {
		panic(fmt.Sprintf("memhost: removeChild: %s is not a child of %s", c, p))
	}
	c.detach()
}

// ReplaceChild implements host.Adapter.
func (d *Document) ReplaceChild(parent, oldChild, newChild host.Node) {
	p, o, n := mustNode(parent), mustNode(oldChild), mustNode(newChild)
	i := p.indexOf(o)
	if i < 0 {
		panic(fmt.Sprintf("memhost: replaceChild: %s is not a child of %s", o, p))
	}
	if o == n {
		return
	}
	n.detach()
	// Detaching n may have shifted o.
	i = p.indexOf(o)
	p.children[i] = n
	n.parent = p
	o.parent = nil
}

// ClearChildren implements host.Adapter.
func (d *Document) ClearChildren(parent host.Node) {
	p := mustNode(parent)
	for _, c := range p.children {
		c.parent = nil
	}
	p.children = nil
}

func mustNode(n host.Node) *Node {
	node, ok := n.(*Node)
	if !ok || node == nil {
		panic(fmt.Sprintf("memhost: foreign node %T", n))
	}
	return node
}
