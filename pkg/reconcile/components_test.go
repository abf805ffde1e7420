package reconcile_test

import (
	"fmt"

	"github.com/vango-dev/reconciler/pkg/element"
)

// tracked is a stateful component that logs every lifecycle call.
type tracked struct {
	element.Base
	log *[]string
}

func newTrackedClass(log *[]string) *element.Class {
	return element.ClassOf("Tracked", func(element.Props) element.Component {
		*log = append(*log, "construct")
		return &tracked{log: log}
	})
}

func (c *tracked) logf(format string, args ...any) {
	*c.log = append(*c.log, fmt.Sprintf(format, args...))
}

func (c *tracked) SetProps(p element.Props) {
	c.Base.SetProps(p)
	c.logf("setProps %v", p.Get("n"))
}

func (c *tracked) OnBeforeMount() { c.logf("beforeMount") }

func (c *tracked) OnBeforeUpdate(next element.Props) {
	c.logf("beforeUpdate %v->%v", c.Props().Get("n"), next.Get("n"))
}

func (c *tracked) OnBeforeUnmount() { c.logf("beforeUnmount") }

func (c *tracked) Render() element.Element {
	c.logf("render %v", c.Props().Get("n"))
	tag := c.Props().GetString("tag")
	if tag == "" {
		tag = "span"
	}
	return element.H(tag, element.Props{"data-n": c.Props().Get("n")})
}

// plain is a stateful component with no optional hooks.
type plain struct{}

func (plain) Render() element.Element { return element.H("i", nil) }

var plainClass = element.ClassOf("Plain", func(element.Props) element.Component { return plain{} })

// switcher renders a host element whose tag comes from props.
var switcher = element.FuncOf("Switcher", func(p element.Props) element.Element {
	return element.H(p.GetString("tag"), nil, p.Children()...)
})

// outer wraps switcher in another component layer.
var outer = element.FuncOf("Outer", func(p element.Props) element.Element {
	return element.Of(switcher, p, p.Children()...)
})

// label renders a span carrying its text.
var label = element.FuncOf("Label", func(p element.Props) element.Element {
	return element.H("span", element.Props{"textContent": p.GetString("text")})
})
