package reconciler_test

import (
	"errors"
	"testing"

	"github.com/vango-dev/reconciler"
	"github.com/vango-dev/reconciler/pkg/host/memhost"
)

var greeting = reconciler.FuncOf("Greeting", func(p reconciler.Props) reconciler.Element {
	return reconciler.H("p", reconciler.Props{"textContent": "Hello " + p.GetString("name")})
})

func TestFacadeMountAndUnmount(t *testing.T) {
	doc := memhost.NewDocument()
	container := doc.NewContainer("root")
	mgr := reconciler.NewManager(doc)

	tree := reconciler.H("main", nil, reconciler.Compact(
		reconciler.Of(greeting, reconciler.Props{"name": "Ada"}),
		reconciler.If(false, reconciler.H("aside", nil)),
	)...)
	if _, err := mgr.MountTree(tree, container); err != nil {
		t.Fatalf("MountTree: %v", err)
	}
	if got, want := memhost.InnerHTML(container), "<main><p>Hello Ada</p></main>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if err := mgr.UnmountTree(container); err != nil {
		t.Fatalf("UnmountTree: %v", err)
	}
	if err := mgr.UnmountTree(container); !errors.Is(err, reconciler.ErrNoMountedRoot) {
		t.Errorf("second UnmountTree: got %v, want ErrNoMountedRoot", err)
	}
}

func TestFacadeInvalidElement(t *testing.T) {
	doc := memhost.NewDocument()
	mgr := reconciler.NewManager(doc)

	_, err := mgr.MountTree(reconciler.Element{}, doc.NewContainer("root"))
	if !errors.Is(err, reconciler.ErrInvalidElementType) {
		t.Errorf("got %v, want ErrInvalidElementType", err)
	}
}
