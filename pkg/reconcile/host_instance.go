package reconcile

import (
	"errors"
	"maps"
	"slices"

	"github.com/vango-dev/reconciler/pkg/element"
	"github.com/vango-dev/reconciler/pkg/host"
)

// hostInstance backs a host tag. It owns one host node and one child
// instance per child element, matched by position.
type hostInstance struct {
	lifecycle
	r        *Reconciler
	current  element.Element
	node     host.Node
	children []Instance
}

func (h *hostInstance) Element() element.Element { return h.current }
func (h *hostInstance) Kind() element.Kind       { return element.KindHost }

// PublicInstance returns the host node.
func (h *hostInstance) PublicInstance() any {
	if h.state != StateMounted {
		return nil
	}
	return h.node
}

func (h *hostInstance) Mount() (host.Node, error) {
	if err := h.beginMount(h.current); err != nil {
		return nil, err
	}

	el, err := hostElement(h.current)
	if err != nil {
		h.state = StateUnmounted
		return nil, err
	}
	h.current = el
	node := h.r.host.CreateNode(string(el.Type.(element.Tag)))
	h.node = node

	for _, name := range sortedKeys(el.Props) {
		h.r.host.SetProperty(node, name, el.Props[name])
	}

	children := make([]Instance, 0, len(el.Children))
	childNodes := make([]host.Node, 0, len(el.Children))
	for _, childEl := range el.Children {
		child, childNode, err := h.r.mountNew(childEl)
		if err != nil {
			h.state = StateUnmounted
			return nil, err
		}
		children = append(children, child)
		childNodes = append(childNodes, childNode)
	}
	h.children = children
	for _, childNode := range childNodes {
		h.r.host.AppendChild(node, childNode)
	}

	h.state = StateMounted
	h.r.changed(EventMount, h)
	return node, nil
}

func (h *hostInstance) Receive(next element.Element) error {
	if err := h.requireMounted("receive", h.current); err != nil {
		return err
	}
	if err := checkSameType(h.current, next); err != nil {
		return err
	}
	next, err := hostElement(next)
	if err != nil {
		return err
	}

	prev := h.current
	h.current = next

	h.updateProperties(prev.Props, next.Props)
	if err := h.updateChildren(next.Children); err != nil {
		return err
	}

	h.r.changed(EventReceive, h)
	return nil
}

// updateProperties removes properties missing from next, then sets every
// property of next.
func (h *hostInstance) updateProperties(prev, next element.Props) {
	for _, name := range sortedKeys(prev) {
		if _, ok := next[name]; !ok {
			h.r.host.RemoveProperty(h.node, name)
		}
	}
	for _, name := range sortedKeys(next) {
		h.r.host.SetProperty(h.node, name, next[name])
	}
}

// updateChildren diffs the rendered children against next by position and
// applies the resulting operations to the host node.
func (h *hostInstance) updateChildren(next []element.Element) error {
	prev := h.children
	rendered := make([]Instance, 0, len(next))
	var queue opQueue

	for i, childEl := range next {
		// No instance at this index: append a new child.
		if i >= len(prev) {
			child, node, err := h.r.mountNew(childEl)
			if err != nil {
				return err
			}
			queue.add(node)
			rendered = append(rendered, child)
			continue
		}

		prevChild := prev[i]
		prevNode, err := prevChild.HostNode()
		if err != nil {
			return err
		}

		// Different type: unmount and mount a replacement.
		if !element.SameType(prevChild.Element().Type, childEl.Type) {
			if err := prevChild.Unmount(); err != nil {
				return err
			}
			child, node, err := h.r.mountNew(childEl)
			if err != nil {
				return err
			}
			queue.replace(prevNode, node)
			rendered = append(rendered, child)
			continue
		}

		// Same type: the child updates itself. A composite child may have
		// rebuilt its subtree, in which case its host node changed.
		if err := prevChild.Receive(childEl); err != nil {
			return err
		}
		nextNode, err := prevChild.HostNode()
		if err != nil {
			return err
		}
		if nextNode != prevNode {
			queue.replace(prevNode, nextNode)
		}
		rendered = append(rendered, prevChild)
	}

	// Unmount children past the end of next.
	for j := len(next); j < len(prev); j++ {
		node, err := prev[j].HostNode()
		if err != nil {
			return err
		}
		if err := prev[j].Unmount(); err != nil {
			return err
		}
		queue.remove(node)
	}

	h.children = rendered
	queue.apply(h.r, h.node)
	return nil
}

// Unmount unmounts every child. The node itself stays attached; detaching
// it is up to the caller.
func (h *hostInstance) Unmount() error {
	if err := h.requireMounted("unmount", h.current); err != nil {
		return err
	}
	h.state = StateUnmounted

	var errs []error
	for _, child := range h.children {
		if err := child.Unmount(); err != nil {
			errs = append(errs, err)
		}
	}

	h.r.changed(EventUnmount, h)
	return errors.Join(errs...)
}

func (h *hostInstance) HostNode() (host.Node, error) {
	if h.state != StateMounted {
		return nil, ErrHostNodeUnavailable.WithDetail("%s is %s", h.current, h.state)
	}
	return h.node, nil
}

// Children returns the rendered child instances.
func (h *hostInstance) Children() []Instance {
	return slices.Clone(h.children)
}

// hostElement moves a "children" prop of an element literal into its
// Children so it is mounted as children, not written as a property.
func hostElement(el element.Element) (element.Element, error) {
	norm, err := el.Normalize()
	if err != nil {
		return element.Element{}, ErrInvalidElementType.WithDetail("%s: %v", el, err)
	}
	return norm, nil
}

// sortedKeys returns the host property names of props. ChildrenKey is
// never a host property.
func sortedKeys(props element.Props) []string {
	keys := slices.Sorted(maps.Keys(props))
	return slices.DeleteFunc(keys, func(k string) bool { return k == element.ChildrenKey })
}
