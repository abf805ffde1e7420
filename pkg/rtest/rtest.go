// Package rtest provides testing helpers for code built on the reconciler.
//
// A Harness wires a Manager to a recording in-memory document so tests can
// assert on both the resulting host tree and the exact adapter calls a
// reconciliation pass made:
//
//	h := rtest.New(t)
//	h.Mount(element.H("ul", nil, element.H("li", nil)))
//	h.Reset()
//	h.Mount(element.H("ul", nil, element.H("li", nil), element.H("li", nil)))
//	rtest.ExpectCount(t, h.Calls(), memhost.CallAppendChild, 1)
package rtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/reconciler/pkg/element"
	"github.com/vango-dev/reconciler/pkg/host/memhost"
	"github.com/vango-dev/reconciler/pkg/reconcile"
)

// Harness is a Manager mounted on a recorded in-memory document.
type Harness struct {
	t         testing.TB
	Doc       *memhost.Document
	Recorder  *memhost.Recorder
	Container *memhost.Node
	Manager   *reconcile.Manager
}

// New creates a harness with an empty "root" container.
func New(t testing.TB, opts ...reconcile.Option) *Harness {
	doc := memhost.NewDocument()
	rec := memhost.NewRecorder(doc)
	return &Harness{
		t:         t,
		Doc:       doc,
		Recorder:  rec,
		Container: doc.NewContainer("root"),
		Manager:   reconcile.NewManager(rec, opts...),
	}
}

// Mount calls MountTree on the harness container, failing the test on error.
func (h *Harness) Mount(el element.Element) any {
	h.t.Helper()
	pub, err := h.Manager.MountTree(el, h.Container)
	if err != nil {
		h.t.Fatalf("MountTree(%s): %v", el, err)
	}
	return pub
}

// Unmount calls UnmountTree on the harness container, failing the test on
// error.
func (h *Harness) Unmount() {
	h.t.Helper()
	if err := h.Manager.UnmountTree(h.Container); err != nil {
		h.t.Fatalf("UnmountTree: %v", err)
	}
}

// Root returns the root instance, failing the test if none is mounted.
func (h *Harness) Root() reconcile.Instance {
	h.t.Helper()
	inst, ok := h.Manager.Root(h.Container)
	if !ok {
		h.t.Fatal("no root mounted")
	}
	return inst
}

// HTML returns the container's content.
func (h *Harness) HTML() string {
	return memhost.InnerHTML(h.Container)
}

// Calls returns the adapter calls recorded since the last Reset.
func (h *Harness) Calls() []memhost.Call {
	return h.Recorder.Calls()
}

// Reset clears the recorded calls.
func (h *Harness) Reset() {
	h.Recorder.Reset()
}

// Render mounts el into a fresh harness and returns the resulting HTML.
func Render(t testing.TB, el element.Element) string {
	t.Helper()
	h := New(t)
	h.Mount(el)
	return h.HTML()
}

// ExpectTrace asserts that calls render exactly to want, one call per entry.
//
// Example:
//
//	rtest.ExpectTrace(t, h.Calls(),
//	    `createNode("p")`,
//	    `appendChild(div, p)`,
//	)
func ExpectTrace(t testing.TB, calls []memhost.Call, want ...string) {
	t.Helper()
	got := make([]string, len(calls))
	for i, c := range calls {
		got[i] = c.String()
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("trace mismatch\ngot:\n  %s\nwant:\n  %s",
			strings.Join(got, "\n  "), strings.Join(want, "\n  "))
	}
}

// ExpectCount asserts how many calls of op were made.
func ExpectCount(t testing.TB, calls []memhost.Call, op memhost.CallOp, want int) {
	t.Helper()
	n := 0
	for _, c := range calls {
		if c.Op == op {
			n++
		}
	}
	if n != want {
		t.Errorf("%s calls = %d, want %d\ntrace:\n%s", op, n, want, truncate(memhost.FormatTrace(calls), 2000))
	}
}

// ExpectHTML asserts that the harness container renders to want.
func ExpectHTML(t testing.TB, h *Harness, want string) {
	t.Helper()
	if got := h.HTML(); got != want {
		t.Errorf("HTML mismatch\ngot:  %s\nwant: %s", truncate(got, 500), truncate(want, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
