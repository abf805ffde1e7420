package reconcile

import (
	"github.com/vango-dev/reconciler/pkg/element"
	"github.com/vango-dev/reconciler/pkg/host"
)

// compositeInstance backs a stateful or function component.
type compositeInstance struct {
	lifecycle
	r        *Reconciler
	current  element.Element
	kind     element.Kind // KindStateful or KindFunctional, fixed at instantiate
	public   element.Component
	rendered Instance
}

func (c *compositeInstance) Element() element.Element { return c.current }
func (c *compositeInstance) Kind() element.Kind       { return c.kind }

// PublicInstance returns the component, or nil for function components.
func (c *compositeInstance) PublicInstance() any {
	if c.public == nil {
		return nil
	}
	return c.public
}

func (c *compositeInstance) Mount() (host.Node, error) {
	if err := c.beginMount(c.current); err != nil {
		return nil, err
	}

	props := c.current.ComponentProps()
	var renderedEl element.Element

	switch c.kind {
	case element.KindStateful:
		class := c.current.Type.(*element.Class)
		public := class.New(props)
		if public == nil {
			c.state = StateUnmounted
			return nil, ErrInvalidElementType.WithDetail("%s: constructor returned nil", class.Name)
		}
		if pr, ok := public.(element.PropsReceiver); ok {
			pr.SetProps(props)
		}
		if m, ok := public.(element.BeforeMounter); ok {
			m.OnBeforeMount()
		}
		c.public = public
		renderedEl = public.Render()
	case element.KindFunctional:
		renderedEl = c.current.Type.(*element.Func).Render(props)
	}

	child, node, err := c.r.mountNew(renderedEl)
	if err != nil {
		c.state = StateUnmounted
		return nil, err
	}
	c.rendered = child
	c.state = StateMounted

	c.r.logger.Debug("reconcile: mounted component",
		"type", c.current.String(),
		"kind", c.kind.String(),
		"rendered", renderedEl.String())
	c.r.changed(EventMount, c)
	return node, nil
}

func (c *compositeInstance) Receive(next element.Element) error {
	if err := c.requireMounted("receive", c.current); err != nil {
		return err
	}
	if err := checkSameType(c.current, next); err != nil {
		return err
	}

	prevRendered := c.rendered.Element()
	c.current = next
	props := next.ComponentProps()

	var nextRendered element.Element
	switch c.kind {
	case element.KindStateful:
		if u, ok := c.public.(element.BeforeUpdater); ok {
			u.OnBeforeUpdate(props)
		}
		if pr, ok := c.public.(element.PropsReceiver); ok {
			pr.SetProps(props)
		}
		nextRendered = c.public.Render()
	case element.KindFunctional:
		nextRendered = next.Type.(*element.Func).Render(props)
	}

	if element.SameType(prevRendered.Type, nextRendered.Type) {
		if err := c.rendered.Receive(nextRendered); err != nil {
			return err
		}
		c.r.changed(EventReceive, c)
		return nil
	}

	// The rendered type changed. The subtree is rebuilt here; the swap of
	// host nodes is queued by whoever attached the old node (the enclosing
	// host instance or the Manager), which sees HostNode change.
	if err := c.rendered.Unmount(); err != nil {
		return err
	}
	child, _, err := c.r.mountNew(nextRendered)
	if err != nil {
		return err
	}
	c.rendered = child

	c.r.logger.Debug("reconcile: replaced rendered child",
		"type", c.current.String(),
		"from", prevRendered.String(),
		"to", nextRendered.String())
	c.r.changed(EventReceive, c)
	return nil
}

func (c *compositeInstance) Unmount() error {
	if err := c.requireMounted("unmount", c.current); err != nil {
		return err
	}
	if u, ok := c.public.(element.BeforeUnmounter); ok {
		u.OnBeforeUnmount()
	}
	c.state = StateUnmounted
	err := c.rendered.Unmount()

	c.r.changed(EventUnmount, c)
	return err
}

// HostNode delegates down the rendered chain until a host instance is
// reached.
func (c *compositeInstance) HostNode() (host.Node, error) {
	if c.state != StateMounted {
		return nil, ErrHostNodeUnavailable.WithDetail("%s is %s", c.current, c.state)
	}
	return c.rendered.HostNode()
}
