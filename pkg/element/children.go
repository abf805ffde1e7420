package element

import "fmt"

// ChildrenKey is the reserved props key holding an element's children.
const ChildrenKey = "children"

// NormalizeChildren converts a "children" value to a sequence.
// Accepted forms: nil, Element, *Element, []Element, []*Element and []any
// whose entries are one of the element forms. Nil entries are skipped.
func NormalizeChildren(v any) ([]Element, error) {
	switch c := v.(type) {
	case nil:
		return nil, nil
	case Element:
		return []Element{c}, nil
	case *Element:
		if c == nil {
			return nil, nil
		}
		return []Element{*c}, nil
	case []Element:
		return c, nil
	case []*Element:
		out := make([]Element, 0, len(c))
		for _, e := range c {
			if e != nil {
				out = append(out, *e)
			}
		}
		return out, nil
	case []any:
		out := make([]Element, 0, len(c))
		for i, item := range c {
			switch e := item.(type) {
			case nil:
			case Element:
				out = append(out, e)
			case *Element:
				if e != nil {
					out = append(out, *e)
				}
			default:
				return nil, fmt.Errorf("children[%d]: unsupported value of type %T", i, item)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("children: unsupported value of type %T", v)
	}
}

// FromProps builds an Element from a props bag that may carry its children
// under ChildrenKey. The returned Element's Props never contains ChildrenKey.
func FromProps(t Type, props map[string]any) (Element, error) {
	el := Element{Type: t}
	if len(props) == 0 {
		return el, nil
	}
	el.Props = make(Props, len(props))
	for k, v := range props {
		if k == ChildrenKey {
			children, err := NormalizeChildren(v)
			if err != nil {
				return Element{}, err
			}
			el.Children = children
			continue
		}
		el.Props[k] = v
	}
	return el, nil
}
