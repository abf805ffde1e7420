package element

// H creates a host element.
func H(tag string, props Props, children ...Element) Element {
	return New(Tag(tag), props, children...)
}

// Of creates a component element.
func Of(t Type, props Props, children ...Element) Element {
	return New(t, props, children...)
}

// New creates an element of any type.
// A "children" entry in props is dropped; pass children explicitly.
func New(t Type, props Props, children ...Element) Element {
	el := Element{Type: t}
	if len(props) > 0 {
		el.Props = make(Props, len(props))
		for k, v := range props {
			if k == ChildrenKey {
				continue
			}
			el.Props[k] = v
		}
	}
	if len(children) > 0 {
		el.Children = children
	}
	return el
}

// If returns the element if condition is true, the zero Element otherwise.
func If(condition bool, el Element) Element {
	if condition {
		return el
	}
	return Element{}
}

// Compact drops zero elements from children.
func Compact(children ...Element) []Element {
	out := make([]Element, 0, len(children))
	for _, c := range children {
		if !c.IsZero() {
			out = append(out, c)
		}
	}
	return out
}
