// Package observe provides reconcile.Observer implementations backed by
// Prometheus and OpenTelemetry.
//
// Both observers can be combined:
//
//	mgr := reconcile.NewManager(doc, reconcile.WithObserver(
//	    reconcile.Observers(observe.NewMetrics(), observe.NewTracer()),
//	))
//
// Metrics label values are bounded: tree operations, lifecycle events,
// component kinds, host operation kinds and registered error codes. Type
// names only appear on spans.
package observe
