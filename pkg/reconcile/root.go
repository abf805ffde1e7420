package reconcile

import (
	"github.com/vango-dev/reconciler/pkg/element"
	"github.com/vango-dev/reconciler/pkg/host"
)

// Manager binds containers to their root instance.
//
// The container→root association is kept in a side table owned by the
// Manager; host nodes never carry bookkeeping.
type Manager struct {
	r     *Reconciler
	roots map[host.Node]Instance
}

// NewManager creates a Manager whose trees are mounted through adapter.
func NewManager(adapter host.Adapter, opts ...Option) *Manager {
	return &Manager{
		r:     New(adapter, opts...),
		roots: make(map[host.Node]Instance),
	}
}

// Reconciler returns the underlying reconciler.
func (m *Manager) Reconciler() *Reconciler {
	return m.r
}

// Root returns the root instance mounted in container.
func (m *Manager) Root(container host.Node) (Instance, bool) {
	inst, ok := m.roots[container]
	return inst, ok
}

// Len returns the number of containers with a mounted root.
func (m *Manager) Len() int {
	return len(m.roots)
}

// MountTree renders el into container and returns the root's public
// instance.
//
// When container already holds a root of the same element type, that root
// receives el and keeps its identity. Otherwise the previous root, if any,
// is unmounted first and a new root is mounted and appended to container.
func (m *Manager) MountTree(el element.Element, container host.Node) (any, error) {
	if root, ok := m.roots[container]; ok {
		if element.SameType(root.Element().Type, el.Type) {
			return m.update(root, el, container)
		}
		if err := m.UnmountTree(container); err != nil {
			return nil, err
		}
	}
	return m.mount(el, container)
}

func (m *Manager) mount(el element.Element, container host.Node) (pub any, err error) {
	done := m.r.observer.TreeStarted(TreeMount, element.TypeName(el.Type))
	defer func() { done(err) }()

	inst, node, err := m.r.mountNew(el)
	if err != nil {
		return nil, err
	}
	m.r.host.AppendChild(container, node)
	m.roots[container] = inst

	m.r.logger.Debug("reconcile: mounted root", "type", el.String())
	return inst.PublicInstance(), nil
}

func (m *Manager) update(root Instance, el element.Element, container host.Node) (pub any, err error) {
	done := m.r.observer.TreeStarted(TreeUpdate, element.TypeName(el.Type))
	defer func() { done(err) }()

	prevNode, err := root.HostNode()
	if err != nil {
		return nil, err
	}
	if err := root.Receive(el); err != nil {
		return nil, err
	}
	nextNode, err := root.HostNode()
	if err != nil {
		return nil, err
	}
	// A composite root may have rebuilt its subtree.
	if nextNode != prevNode {
		var queue opQueue
		queue.replace(prevNode, nextNode)
		queue.apply(m.r, container)
	}

	m.r.logger.Debug("reconcile: updated root", "type", el.String())
	return root.PublicInstance(), nil
}

// UnmountTree unmounts the root in container, clears the container's host
// content and forgets the association.
func (m *Manager) UnmountTree(container host.Node) (err error) {
	root, ok := m.roots[container]
	if !ok {
		return ErrNoMountedRoot.WithDetail("container %v", container)
	}

	done := m.r.observer.TreeStarted(TreeUnmount, element.TypeName(root.Element().Type))
	defer func() { done(err) }()

	delete(m.roots, container)
	if err := root.Unmount(); err != nil {
		return err
	}
	m.r.host.ClearChildren(container)

	m.r.logger.Debug("reconcile: unmounted root", "type", root.Element().String())
	return nil
}
