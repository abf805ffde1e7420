// Package reconciler is the convenience import for building and mounting
// element trees.
//
//	import "github.com/vango-dev/reconciler"
//
// Usage:
//
//	doc := memhost.NewDocument()
//	container := doc.NewContainer("root")
//	mgr := reconciler.NewManager(doc)
//	mgr.MountTree(reconciler.H("div", reconciler.Props{"id": "app"}), container)
//
// The packages under pkg/ expose the full API; this package re-exports the
// parts most programs need.
package reconciler

import (
	"github.com/vango-dev/reconciler/pkg/element"
	"github.com/vango-dev/reconciler/pkg/host"
	"github.com/vango-dev/reconciler/pkg/reconcile"
)

// =============================================================================
// Elements (re-export from pkg/element)
// =============================================================================

// Element is an immutable description of UI content.
type Element = element.Element

// Props holds an element's properties.
type Props = element.Props

// Type is the type of an element: a Tag, *Func or *Class.
type Type = element.Type

// Tag is a host element type such as "div".
type Tag = element.Tag

// Func is a plain function component.
type Func = element.Func

// Class is a stateful component descriptor.
type Class = element.Class

// Component is a stateful component instance.
type Component = element.Component

// Base is embedded by stateful components to hold their props.
type Base = element.Base

// H creates a host element.
//
// Example:
//
//	reconciler.H("ul", nil,
//	    reconciler.H("li", reconciler.Props{"textContent": "one"}),
//	)
var H = element.H

// Of creates an element of any type.
var Of = element.Of

// FuncOf creates a function component type.
//
// Example:
//
//	var Greeting = reconciler.FuncOf("Greeting", func(p reconciler.Props) reconciler.Element {
//	    return reconciler.H("p", reconciler.Props{"textContent": "Hello " + p.GetString("name")})
//	})
var FuncOf = element.FuncOf

// ClassOf creates a stateful component type.
var ClassOf = element.ClassOf

// If returns el when condition is true, and a zero Element otherwise.
// Zero elements are not valid children; pass the result through Compact.
var If = element.If

// Compact drops zero elements from children.
//
// Example:
//
//	reconciler.H("nav", nil, reconciler.Compact(
//	    reconciler.If(loggedIn, logout),
//	    home,
//	)...)
var Compact = element.Compact

// =============================================================================
// Reconciliation (re-export from pkg/reconcile)
// =============================================================================

// Manager mounts and unmounts element trees in host containers.
type Manager = reconcile.Manager

// Instance is a mounted node of the internal instance tree.
type Instance = reconcile.Instance

// Option configures a Manager.
type Option = reconcile.Option

// Observer receives reconciliation events.
type Observer = reconcile.Observer

// Adapter is the host environment a Manager writes to.
type Adapter = host.Adapter

// NewManager creates a Manager writing to adapter.
func NewManager(adapter Adapter, opts ...Option) *Manager {
	return reconcile.NewManager(adapter, opts...)
}

// WithLogger sets the logger used for debug records.
var WithLogger = reconcile.WithLogger

// WithObserver installs an observer.
var WithObserver = reconcile.WithObserver

// Errors returned by a Manager. Match them with errors.Is.
var (
	ErrInvalidElementType  = reconcile.ErrInvalidElementType
	ErrNoMountedRoot       = reconcile.ErrNoMountedRoot
	ErrHostNodeUnavailable = reconcile.ErrHostNodeUnavailable
	ErrLifecycleViolation  = reconcile.ErrLifecycleViolation
)
