// Package reconcile keeps a mutable host tree in sync with immutable element
// trees.
//
// Every mounted element is backed by an Instance. Host tags are backed by a
// host instance that owns one host node and an index-aligned list of child
// instances. Components are backed by a composite instance that owns the
// component's public instance (nil for function components) and the single
// instance its render output produced.
//
// # Lifecycle
//
// An instance is created by Reconciler.Instantiate, mounted exactly once,
// receives zero or more updates and is unmounted exactly once. Calls out of
// that order fail with ErrLifecycleViolation.
//
// # Diffing
//
// Receive compares element types. Same type reuses the existing instance;
// a different type unmounts it and mounts a replacement. Host children are
// matched by position only:
//
//	prev: [span, p]        next: [span, div, b]
//	  0: span == span   → receive
//	  1: p    != div    → replace
//	  2: (none)         → add
//
// Host mutations for a children pass are queued and applied after every
// child has been visited, so node lookups always see the tree as it was
// before the pass.
//
// # Roots
//
// Manager binds containers to root instances through a side table and is
// the entry point: MountTree mounts or updates, UnmountTree tears down.
//
// # Failure Model
//
// Errors are returned to the caller of MountTree / UnmountTree as they
// happen. Nothing is rolled back: if a pass fails part way, the host tree
// and the instance tree may disagree and the affected root should be
// discarded.
//
// A Manager and its instances are not safe for concurrent use. Callers
// sharing a container across goroutines must serialize access.
package reconcile
