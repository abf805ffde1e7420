// Package errors provides structured, coded errors for the reconciler.
//
// Every error carries a code (e.g. "R001") registered with a category, a
// short message and a longer explanation. Errors compare equal under
// errors.Is when their codes match, so packages can export sentinel values
// built with New and wrap them with call-site detail.
//
// # Error Categories
//
//   - reconcile: Instance tree and root manager errors
//   - fixture: Element tree document decoding errors
//   - config: Project configuration errors
//   - storage: Snapshot store errors
//
// # Usage
//
//	err := errors.New(errors.CodeFixtureDecode).
//	    WithLocation("tree.yaml", 12, 5).
//	    WithDetail("children must be a list")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR R010: Invalid element tree document
//	//
//	//   tree.yaml:12:5
//	//
//	//     11 │ type: div
//	//   → 12 │ children: span
//	//        │     ^
package errors
