package memhost

import (
	"fmt"
	"strconv"
	"strings"
)

// voidElements are elements rendered without a closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// HTML renders node and its subtree as HTML.
func HTML(node *Node) string {
	var b strings.Builder
	writeHTML(&b, node, 0, false)
	return b.String()
}

// InnerHTML renders the children of node.
func InnerHTML(node *Node) string {
	var b strings.Builder
	for _, c := range node.children {
		writeHTML(&b, c, 0, false)
	}
	return b.String()
}

// Indented renders node as indented HTML, one element per line.
func Indented(node *Node) string {
	var b strings.Builder
	writeHTML(&b, node, 0, true)
	return b.String()
}

func writeHTML(b *strings.Builder, n *Node, depth int, indent bool) {
	if indent {
		b.WriteString(strings.Repeat("  ", depth))
	}
	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, name := range n.PropertyNames() {
		if name == TextProperty {
			continue
		}
		v := n.props[name]
		switch val := v.(type) {
		case nil:
			continue
		case bool:
			if val {
				b.WriteByte(' ')
				b.WriteString(name)
			}
			continue
		}
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(propToString(v)))
		b.WriteByte('"')
	}
	b.WriteByte('>')

	if voidElements[n.Tag] {
		if indent {
			b.WriteByte('\n')
		}
		return
	}

	text, hasText := n.props[TextProperty]
	if hasText {
		b.WriteString(escapeHTML(propToString(text)))
	}

	if indent && len(n.children) > 0 {
		b.WriteByte('\n')
		for _, c := range n.children {
			writeHTML(b, c, depth+1, indent)
		}
		b.WriteString(strings.Repeat("  ", depth))
	} else {
		for _, c := range n.children {
			writeHTML(b, c, depth+1, false)
		}
	}

	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
	if indent {
		b.WriteByte('\n')
	}
}

// escapeHTML escapes text for inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for inclusion in a quoted attribute value.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteString(escapeHTML(string(r)))
		}
	}

	return buf.String()
}

// propToString converts a property value to its string form.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
