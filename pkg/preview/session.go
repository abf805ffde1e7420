package preview

import (
	"strings"
	"sync"

	"github.com/vango-dev/reconciler/pkg/element"
	"github.com/vango-dev/reconciler/pkg/host/memhost"
	"github.com/vango-dev/reconciler/pkg/reconcile"
)

// Session owns one in-memory document and container. All operations are
// serialized, so a Session may be shared between HTTP handlers and a file
// watcher.
type Session struct {
	mu        sync.Mutex
	doc       *memhost.Document
	rec       *memhost.Recorder
	container *memhost.Node
	mgr       *reconcile.Manager
	version   int
	last      Update
}

// Update describes the state of a session after a pass.
type Update struct {
	Type    string   `json:"type"`
	Version int      `json:"version"`
	Root    string   `json:"root,omitempty"`
	HTML    string   `json:"html"`
	Trace   []string `json:"trace"`
	Error   string   `json:"error,omitempty"`
}

// Update types.
const (
	UpdateMount   = "mount"
	UpdateUnmount = "unmount"
	UpdateError   = "error"
)

// NewSession creates an empty session. opts configure its Manager.
func NewSession(opts ...reconcile.Option) *Session {
	doc := memhost.NewDocument()
	rec := memhost.NewRecorder(doc)
	return &Session{
		doc:       doc,
		rec:       rec,
		container: doc.NewContainer("root"),
		mgr:       reconcile.NewManager(rec, opts...),
		last:      Update{Type: UpdateUnmount, Trace: []string{}},
	}
}

// Mount reconciles el into the session container and returns the new
// state with the adapter calls the pass made.
func (s *Session) Mount(el element.Element) (Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec.Reset()
	_, err := s.mgr.MountTree(el, s.container)
	calls := s.rec.Reset()
	if err != nil {
		return Update{Type: UpdateError, Version: s.version, Error: err.Error(), Trace: traceLines(calls)}, err
	}

	s.version++
	s.last = Update{
		Type:    UpdateMount,
		Version: s.version,
		Root:    el.String(),
		HTML:    memhost.InnerHTML(s.container),
		Trace:   traceLines(calls),
	}
	return s.last, nil
}

// Unmount tears down the mounted tree.
func (s *Session) Unmount() (Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec.Reset()
	err := s.mgr.UnmountTree(s.container)
	calls := s.rec.Reset()
	if err != nil {
		return Update{Type: UpdateError, Version: s.version, Error: err.Error(), Trace: traceLines(calls)}, err
	}

	s.version++
	s.last = Update{
		Type:    UpdateUnmount,
		Version: s.version,
		HTML:    memhost.InnerHTML(s.container),
		Trace:   traceLines(calls),
	}
	return s.last, nil
}

// Last returns the state after the most recent successful pass.
func (s *Session) Last() Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// HTML returns the current container content.
func (s *Session) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memhost.InnerHTML(s.container)
}

// Indented returns the current container content, one node per line.
func (s *Session) Indented() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var b strings.Builder
	for _, child := range s.container.Children() {
		b.WriteString(memhost.Indented(child))
	}
	return b.String()
}

func traceLines(calls []memhost.Call) []string {
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}
