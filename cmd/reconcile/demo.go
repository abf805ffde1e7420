package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/vango-dev/reconciler/pkg/element"
	"github.com/vango-dev/reconciler/pkg/fixture"
)

// Card wraps its children in a titled section.
//
//	type: Card
//	props: {title: Hello}
//	children: [...]
var Card = element.FuncOf("Card", func(props element.Props) element.Element {
	return element.H("section", element.Props{"class": "card"},
		element.H("h2", element.Props{"textContent": props.GetString("title")}),
		element.H("div", element.Props{"class": "card-body"}, props.Children()...),
	)
})

// Counter is a stateful button. It starts at its "start" prop and counts
// every update it receives, so repeated renders of the same document show
// that the instance survived.
var Counter = element.ClassOf("Counter", func(element.Props) element.Component {
	return &counter{}
})

type counter struct {
	element.Base
	count int
}

func (c *counter) OnBeforeMount() {
	c.count = intProp(c.Props(), "start")
	slog.Debug("counter: mount", "count", c.count)
}

func (c *counter) OnBeforeUpdate(next element.Props) {
	c.count++
	slog.Debug("counter: update", "count", c.count, "label", next.GetString("label"))
}

func (c *counter) OnBeforeUnmount() {
	slog.Debug("counter: unmount", "count", c.count)
}

func (c *counter) Render() element.Element {
	label := c.Props().GetString("label")
	if label == "" {
		label = "Count"
	}
	return element.H("button", element.Props{
		"data-count":  c.count,
		"textContent": fmt.Sprintf("%s: %d", label, c.count),
	})
}

// intProp reads an integer prop decoded from YAML or JSON.
func intProp(props element.Props, key string) int {
	switch v := props.Get(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

// components returns the registry documents are decoded against.
func components() *fixture.Registry {
	return fixture.NewRegistry(Card, Counter)
}
