package element

import "testing"

func TestKindOf(t *testing.T) {
	fn := FuncOf("Fn", func(Props) Element { return H("div", nil) })
	cls := ClassOf("Cls", func(Props) Component { return nil })

	tests := []struct {
		name string
		typ  Type
		want Kind
	}{
		{"host tag", Tag("div"), KindHost},
		{"empty tag", Tag(""), KindInvalid},
		{"function", fn, KindFunctional},
		{"class", cls, KindStateful},
		{"nil", nil, KindInvalid},
		{"nil func pointer", (*Func)(nil), KindInvalid},
		{"nil class pointer", (*Class)(nil), KindInvalid},
		{"func without render", &Func{Name: "x"}, KindInvalid},
		{"class without constructor", &Class{Name: "x"}, KindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.typ); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindHost, "Host"},
		{KindStateful, "Stateful"},
		{KindFunctional, "Functional"},
		{KindInvalid, "Invalid"},
		{Kind(99), "Invalid"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestSameType(t *testing.T) {
	render := func(Props) Element { return H("div", nil) }
	a := FuncOf("A", render)
	b := FuncOf("A", render)

	if !SameType(Tag("div"), Tag("div")) {
		t.Error("equal tags should be the same type")
	}
	if SameType(Tag("div"), Tag("span")) {
		t.Error("different tags should differ")
	}
	if !SameType(a, a) {
		t.Error("a component should be the same type as itself")
	}
	if SameType(a, b) {
		t.Error("distinct descriptors should differ even with equal names")
	}
	if SameType(Tag("A"), a) {
		t.Error("a tag and a component should differ")
	}
}

func TestTypeName(t *testing.T) {
	if got := TypeName(Tag("div")); got != "div" {
		t.Errorf("TypeName(div) = %q", got)
	}
	if got := TypeName(FuncOf("Card", nil)); got != "Card" {
		t.Errorf("TypeName(Card) = %q", got)
	}
	if got := TypeName(nil); got != "<nil>" {
		t.Errorf("TypeName(nil) = %q", got)
	}
	if got := TypeName(&Class{}); got != "<anonymous>" {
		t.Errorf("TypeName(anonymous) = %q", got)
	}
}

func TestNewDropsChildrenProp(t *testing.T) {
	el := H("div", Props{"id": "a", ChildrenKey: "ignored"}, H("span", nil))

	if _, ok := el.Props[ChildrenKey]; ok {
		t.Error("Props should not contain children")
	}
	if el.Props["id"] != "a" {
		t.Errorf("id = %v, want a", el.Props["id"])
	}
	if len(el.Children) != 1 {
		t.Fatalf("len(Children) = %d, want 1", len(el.Children))
	}
	if el.Children[0].Type != Tag("span") {
		t.Errorf("child type = %v, want span", el.Children[0].Type)
	}
}

func TestNewCopiesProps(t *testing.T) {
	props := Props{"id": "a"}
	el := H("div", props)
	props["id"] = "b"

	if el.Props["id"] != "a" {
		t.Errorf("element props changed with caller map: id = %v", el.Props["id"])
	}
}

func TestNormalizeChildren(t *testing.T) {
	span := H("span", nil)
	p := H("p", nil)

	tests := []struct {
		name    string
		in      any
		want    int
		wantErr bool
	}{
		{"absent", nil, 0, false},
		{"single element", span, 1, false},
		{"single pointer", &span, 1, false},
		{"nil pointer", (*Element)(nil), 0, false},
		{"slice", []Element{span, p}, 2, false},
		{"pointer slice", []*Element{&span, nil, &p}, 2, false},
		{"any slice", []any{span, nil, &p}, 2, false},
		{"any slice bad entry", []any{span, 3}, 0, true},
		{"string", "text", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeChildren(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestFromProps(t *testing.T) {
	el, err := FromProps(Tag("div"), map[string]any{
		"id":        "a",
		ChildrenKey: H("span", nil),
	})
	if err != nil {
		t.Fatalf("FromProps: %v", err)
	}
	if len(el.Children) != 1 {
		t.Fatalf("len(Children) = %d, want 1", len(el.Children))
	}
	if _, ok := el.Props[ChildrenKey]; ok {
		t.Error("Props should not contain children")
	}

	if _, err := FromProps(Tag("div"), map[string]any{ChildrenKey: 42}); err == nil {
		t.Error("expected error for invalid children")
	}

	empty, err := FromProps(Tag("br"), nil)
	if err != nil {
		t.Fatalf("FromProps(nil): %v", err)
	}
	if empty.Props != nil || empty.Children != nil {
		t.Errorf("expected empty element, got %+v", empty)
	}
}

func TestNormalize(t *testing.T) {
	span := H("span", nil)

	el, err := Element{Type: Tag("div"), Props: Props{"id": "a", ChildrenKey: []Element{span}}}.Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(el.Children) != 1 || el.Children[0].Type != Tag("span") {
		t.Errorf("Children = %v, want [span]", el.Children)
	}
	if _, ok := el.Props[ChildrenKey]; ok {
		t.Error("Props should not contain children")
	}
	if el.Props["id"] != "a" {
		t.Errorf("id = %v, want a", el.Props["id"])
	}

	explicit := H("p", nil)
	el, err = Element{Type: Tag("div"), Props: Props{ChildrenKey: span}, Children: []Element{explicit}}.Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(el.Children) != 1 || el.Children[0].Type != Tag("p") {
		t.Errorf("Children = %v, want explicit [p]", el.Children)
	}

	plain := H("div", Props{"id": "b"}, span)
	if got, _ := plain.Normalize(); got.Props["id"] != "b" || len(got.Children) != 1 {
		t.Errorf("Normalize changed a normal element: %+v", got)
	}

	if _, err := (Element{Type: Tag("div"), Props: Props{ChildrenKey: 42}}).Normalize(); err == nil {
		t.Error("expected error for invalid children")
	}
}

func TestComponentProps(t *testing.T) {
	child := H("li", nil)
	el := Of(FuncOf("List", nil), Props{"title": "x"}, child)

	props := el.ComponentProps()
	if props.GetString("title") != "x" {
		t.Errorf("title = %q, want x", props.GetString("title"))
	}
	children := props.Children()
	if len(children) != 1 || children[0].Type != Tag("li") {
		t.Errorf("Children() = %v, want [li]", children)
	}

	props["title"] = "changed"
	if el.Props["title"] != "x" {
		t.Error("ComponentProps should return a copy")
	}

	bare := Of(FuncOf("Bare", nil), nil).ComponentProps()
	if _, ok := bare[ChildrenKey]; ok {
		t.Error("children key should be absent without children")
	}
}

func TestIfAndCompact(t *testing.T) {
	kids := Compact(If(true, H("a", nil)), If(false, H("b", nil)), H("c", nil))
	if len(kids) != 2 {
		t.Fatalf("len = %d, want 2", len(kids))
	}
	if kids[0].Type != Tag("a") || kids[1].Type != Tag("c") {
		t.Errorf("got %v %v", kids[0], kids[1])
	}
}

type counter struct {
	Base
}

func (c *counter) Render() Element { return H("span", nil) }

func TestBaseProps(t *testing.T) {
	var c Component = &counter{}
	r, ok := c.(PropsReceiver)
	if !ok {
		t.Fatal("embedding Base should implement PropsReceiver")
	}
	r.SetProps(Props{"n": 1})
	if got := c.(*counter).Props().Get("n"); got != 1 {
		t.Errorf("n = %v, want 1", got)
	}
}
