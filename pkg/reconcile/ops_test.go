package reconcile

import (
	"errors"
	"slices"
	"testing"

	"github.com/vango-dev/reconciler/pkg/element"
	"github.com/vango-dev/reconciler/pkg/host/memhost"
)

type countingObserver struct {
	trees  []string
	errs   []error
	events map[LifecycleEvent]int
	ops    []OpKind
}

func newCountingObserver() *countingObserver {
	return &countingObserver{events: make(map[LifecycleEvent]int)}
}

func (o *countingObserver) TreeStarted(op TreeOp, rootType string) func(error) {
	o.trees = append(o.trees, op.String()+" "+rootType)
	return func(err error) { o.errs = append(o.errs, err) }
}

func (o *countingObserver) InstanceChanged(ev LifecycleEvent, _ element.Kind, _ string) {
	o.events[ev]++
}

func (o *countingObserver) OperationApplied(op OpKind) {
	o.ops = append(o.ops, op)
}

func TestOpQueueAppliesInOrder(t *testing.T) {
	doc := memhost.NewDocument()
	rec := memhost.NewRecorder(doc)
	obs := newCountingObserver()
	r := New(rec, WithObserver(obs))

	parent := doc.NewContainer("ul")
	a := doc.CreateNode("a")
	b := doc.CreateNode("b")
	c := doc.CreateNode("c")
	doc.AppendChild(parent, a)
	doc.AppendChild(parent, b)

	var q opQueue
	q.replace(a, c)
	q.remove(b)
	q.add(a)
	q.apply(r, parent)

	want := []string{
		"replaceChild(ul, a, c)",
		"removeChild(ul, b)",
		"appendChild(ul, a)",
	}
	var got []string
	for _, call := range rec.Calls() {
		got = append(got, call.String())
	}
	if !slices.Equal(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if !slices.Equal(obs.ops, []OpKind{OpReplace, OpRemove, OpAdd}) {
		t.Errorf("observed ops = %v", obs.ops)
	}
	if got := memhost.InnerHTML(parent); got != "<c></c><a></a>" {
		t.Errorf("HTML = %q", got)
	}
}

func TestOpKindString(t *testing.T) {
	tests := []struct {
		op   OpKind
		want string
	}{
		{OpAdd, "ADD"},
		{OpReplace, "REPLACE"},
		{OpRemove, "REMOVE"},
		{OpKind(0), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("OpKind(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestObserverSeesTreeOperations(t *testing.T) {
	doc := memhost.NewDocument()
	obs := newCountingObserver()
	m := NewManager(doc, WithObserver(obs))
	root := doc.NewContainer("root")

	if _, err := m.MountTree(element.H("ul", nil, element.H("li", nil)), root); err != nil {
		t.Fatal(err)
	}
	if _, err := m.MountTree(element.H("ul", nil), root); err != nil {
		t.Fatal(err)
	}
	if err := m.UnmountTree(root); err != nil {
		t.Fatal(err)
	}
	_, err := m.MountTree(element.Element{}, root)
	if !errors.Is(err, ErrInvalidElementType) {
		t.Fatalf("err = %v, want ErrInvalidElementType", err)
	}

	wantTrees := []string{"mount ul", "update ul", "unmount ul", "mount <nil>"}
	if !slices.Equal(obs.trees, wantTrees) {
		t.Errorf("trees = %v, want %v", obs.trees, wantTrees)
	}
	if len(obs.errs) != 4 || obs.errs[0] != nil || obs.errs[2] != nil {
		t.Fatalf("done errors = %v", obs.errs)
	}
	if !errors.Is(obs.errs[3], ErrInvalidElementType) {
		t.Errorf("done(err) = %v, want ErrInvalidElementType", obs.errs[3])
	}
	if obs.events[EventMount] != 2 {
		t.Errorf("mount events = %d, want 2", obs.events[EventMount])
	}
	if obs.events[EventReceive] != 1 {
		t.Errorf("receive events = %d, want 1", obs.events[EventReceive])
	}
	// li is unmounted by the update, ul by UnmountTree.
	if obs.events[EventUnmount] != 2 {
		t.Errorf("unmount events = %d, want 2", obs.events[EventUnmount])
	}
	if !slices.Equal(obs.ops, []OpKind{OpRemove}) {
		t.Errorf("ops = %v, want [REMOVE]", obs.ops)
	}
}

func TestObserversFansOut(t *testing.T) {
	a, b := newCountingObserver(), newCountingObserver()
	o := Observers(a, nil, b)

	done := o.TreeStarted(TreeMount, "div")
	done(nil)
	o.InstanceChanged(EventMount, element.KindHost, "div")
	o.OperationApplied(OpAdd)

	for _, obs := range []*countingObserver{a, b} {
		if len(obs.trees) != 1 || len(obs.errs) != 1 || obs.events[EventMount] != 1 || len(obs.ops) != 1 {
			t.Errorf("observer missed events: %+v", obs)
		}
	}
}
