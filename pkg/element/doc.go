// Package element defines the immutable description of desired UI content.
//
// An Element pairs a Type with Props and an ordered list of children. The
// Type is either a host tag naming a primitive of the host tree, or a
// component reference:
//
//	element.Tag("div")                         // host primitive
//	element.FuncOf("Card", renderCard)         // plain function component
//	element.ClassOf("Counter", newCounter)     // stateful component
//
// # Building Trees
//
// H builds a host element from a tag, a props map and children:
//
//	element.H("div", element.Props{"id": "main"},
//	    element.H("span", nil),
//	    element.Of(card, element.Props{"title": "Hello"}),
//	)
//
// # Component Contract
//
// Plain function components are called with the element's props and return
// the Element they render. Stateful components are constructed once per
// mounted instance from the element's props and expose Render. They may
// implement any of PropsReceiver, BeforeMounter, BeforeUpdater and
// BeforeUnmounter to observe their lifecycle. Embedding Base provides the
// mutable props field.
package element
