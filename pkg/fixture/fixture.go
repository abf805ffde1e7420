// Package fixture decodes element trees from YAML or JSON documents.
//
// A document is a node mapping with a type, optional props and optional
// children:
//
//	type: div
//	props:
//	  id: main
//	children:
//	  - type: Card
//	    props: {title: Hello}
//	  - type: p
//	    props: {textContent: body}
//
// Lower-case type names that are not registered are host tags. Other names
// must be registered components. JSON documents decode the same way.
package fixture

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	rerrors "github.com/vango-dev/reconciler/internal/errors"
	"github.com/vango-dev/reconciler/pkg/element"
)

// Errors returned while decoding. Match them with errors.Is.
var (
	ErrDecode           = rerrors.New(rerrors.CodeFixtureDecode)
	ErrUnknownComponent = rerrors.New(rerrors.CodeUnknownComponent)
)

// Registry maps component names to their element types.
type Registry struct {
	types map[string]element.Type
}

// NewRegistry creates a registry holding types, keyed by their names.
func NewRegistry(types ...element.Type) *Registry {
	r := &Registry{types: make(map[string]element.Type, len(types))}
	for _, t := range types {
		r.Register(t)
	}
	return r
}

// Register adds t under its name, replacing any previous entry.
func (r *Registry) Register(t element.Type) {
	r.types[element.TypeName(t)] = t
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (element.Type, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.types[name]
	return t, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Decode parses one element tree document.
func Decode(data []byte, reg *Registry) (element.Element, error) {
	return decode("<input>", data, reg)
}

// DecodeFile reads and parses the document at path. Decode errors carry
// the file location of the offending node.
func DecodeFile(path string, reg *Registry) (element.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return element.Element{}, ErrDecode.WithDetail("read %s", path).Wrap(err)
	}
	return decode(path, data, reg)
}

func decode(name string, data []byte, reg *Registry) (element.Element, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return element.Element{}, ErrDecode.WithDetail("%s: empty document", name)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return element.Element{}, ErrDecode.WithDetail("%s", name).Wrap(err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	d := decoder{file: name, reg: reg}
	return d.element(root)
}

type decoder struct {
	file string
	reg  *Registry
}

func (d *decoder) fail(node *yaml.Node, format string, args ...any) *rerrors.Error {
	return ErrDecode.WithDetail(format, args...).WithLocation(d.file, node.Line, node.Column)
}

func (d *decoder) element(node *yaml.Node) (element.Element, error) {
	if node.Kind != yaml.MappingNode {
		return element.Element{}, d.fail(node, "element must be a mapping, got %s", kindName(node.Kind))
	}

	var (
		typeNode     *yaml.Node
		propsNode    *yaml.Node
		childrenNode *yaml.Node
	)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "type":
			typeNode = value
		case "props":
			propsNode = value
		case "children":
			childrenNode = value
		default:
			return element.Element{}, d.fail(key, "unknown field %q", key.Value).
				WithSuggestion("Elements only have type, props and children.")
		}
	}
	if typeNode == nil {
		return element.Element{}, d.fail(node, "element has no type")
	}

	t, err := d.resolve(typeNode)
	if err != nil {
		return element.Element{}, err
	}

	var props element.Props
	if propsNode != nil {
		if propsNode.Kind != yaml.MappingNode {
			return element.Element{}, d.fail(propsNode, "props must be a mapping")
		}
		if err := propsNode.Decode(&props); err != nil {
			return element.Element{}, d.fail(propsNode, "props: %v", err)
		}
		if _, ok := props[element.ChildrenKey]; ok {
			return element.Element{}, d.fail(propsNode, "children belong in the children field, not props")
		}
	}

	var children []element.Element
	if childrenNode != nil {
		if childrenNode.Kind != yaml.SequenceNode {
			return element.Element{}, d.fail(childrenNode, "children must be a list")
		}
		for _, c := range childrenNode.Content {
			child, err := d.element(c)
			if err != nil {
				return element.Element{}, err
			}
			children = append(children, child)
		}
	}

	return element.New(t, props, children...), nil
}

func (d *decoder) resolve(node *yaml.Node) (element.Type, error) {
	if node.Kind != yaml.ScalarNode || node.Value == "" {
		return nil, d.fail(node, "type must be a non-empty string")
	}
	name := node.Value
	if t, ok := d.reg.Lookup(name); ok {
		return t, nil
	}
	if r, _ := utf8.DecodeRuneInString(name); unicode.IsUpper(r) {
		err := ErrUnknownComponent.WithDetail("%q", name).WithLocation(d.file, node.Line, node.Column)
		if names := d.reg.Names(); len(names) > 0 {
			err.WithSuggestion("Registered components: " + strings.Join(names, ", "))
		}
		return nil, err
	}
	return element.Tag(name), nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "list"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return fmt.Sprintf("kind %d", k)
	}
}
