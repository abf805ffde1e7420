package element

// Kind is the component kind discriminator, decided once per element type.
type Kind uint8

const (
	KindInvalid    Kind = iota // Unrecognized type
	KindHost                   // Host tag (<div>, <span> ...)
	KindStateful               // Stateful component descriptor
	KindFunctional             // Plain render function
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindHost:
		return "Host"
	case KindStateful:
		return "Stateful"
	case KindFunctional:
		return "Functional"
	default:
		return "Invalid"
	}
}

// Type identifies what an Element renders to.
// It is implemented by Tag, *Func and *Class only.
type Type interface {
	typeName() string
}

// Tag is a host tag identifying a primitive host element.
type Tag string

func (t Tag) typeName() string { return string(t) }

// Func is a plain function component.
// Two elements have the same type when they reference the same *Func.
type Func struct {
	Name   string
	Render func(props Props) Element
}

func (f *Func) typeName() string {
	if f == nil {
		return ""
	}
	return f.Name
}

// Class is a stateful component descriptor.
// New is called once per mounted instance.
type Class struct {
	Name string
	New  func(props Props) Component
}

func (c *Class) typeName() string {
	if c == nil {
		return ""
	}
	return c.Name
}

// FuncOf creates a function component type.
func FuncOf(name string, render func(props Props) Element) *Func {
	return &Func{Name: name, Render: render}
}

// ClassOf creates a stateful component type.
func ClassOf(name string, construct func(props Props) Component) *Class {
	return &Class{Name: name, New: construct}
}

// KindOf classifies t. Types that cannot be instantiated report KindInvalid.
func KindOf(t Type) Kind {
	switch v := t.(type) {
	case Tag:
		if v != "" {
			return KindHost
		}
	case *Func:
		if v != nil && v.Render != nil {
			return KindFunctional
		}
	case *Class:
		if v != nil && v.New != nil {
			return KindStateful
		}
	}
	return KindInvalid
}

// TypeName returns a printable name for t.
func TypeName(t Type) string {
	if t == nil {
		return "<nil>"
	}
	if name := t.typeName(); name != "" {
		return name
	}
	return "<anonymous>"
}

// SameType reports whether a and b are the same element type.
func SameType(a, b Type) bool {
	return a == b
}

// Props holds the properties of an element, excluding its children.
type Props map[string]any

// Get returns the value for key, or nil.
func (p Props) Get(key string) any {
	if p == nil {
		return nil
	}
	return p[key]
}

// GetString returns the string value for key, or "".
func (p Props) GetString(key string) string {
	s, _ := p.Get(key).(string)
	return s
}

// Children returns the "children" entry normalized to a sequence.
// Components read their children this way.
func (p Props) Children() []Element {
	children, _ := NormalizeChildren(p.Get(ChildrenKey))
	return children
}

// Element is an immutable description of UI content.
// Props never contains the "children" key; children live in Children.
type Element struct {
	Type     Type
	Props    Props
	Children []Element
}

// IsZero returns true if the element has no type.
func (e Element) IsZero() bool {
	return e.Type == nil
}

// Kind returns the kind of the element's type.
func (e Element) Kind() Kind {
	return KindOf(e.Type)
}

// ComponentProps returns the props passed to a component: a copy of Props
// with "children" set when the element has children.
func (e Element) ComponentProps() Props {
	out := make(Props, len(e.Props)+1)
	for k, v := range e.Props {
		out[k] = v
	}
	if len(e.Children) > 0 {
		out[ChildrenKey] = e.Children
	}
	return out
}

// Normalize returns e with a "children" entry of Props moved into Children.
// Elements built with New or FromProps are already normal; this covers
// Element literals. Explicit Children take precedence over the prop.
func (e Element) Normalize() (Element, error) {
	v, ok := e.Props[ChildrenKey]
	if !ok {
		return e, nil
	}
	children, err := NormalizeChildren(v)
	if err != nil {
		return Element{}, err
	}
	out := Element{Type: e.Type, Children: e.Children}
	if len(out.Children) == 0 && len(children) > 0 {
		out.Children = children
	}
	out.Props = make(Props, len(e.Props)-1)
	for k, v := range e.Props {
		if k != ChildrenKey {
			out.Props[k] = v
		}
	}
	return out, nil
}

// String returns a short description of the element.
func (e Element) String() string {
	return TypeName(e.Type)
}
