package errors

import "sort"

// Registered error codes.
const (
	CodeInvalidElementType  = "R001"
	CodeNoMountedRoot       = "R002"
	CodeHostNodeUnavailable = "R003"
	CodeLifecycleViolation  = "R004"

	CodeFixtureDecode    = "R010"
	CodeUnknownComponent = "R011"

	CodeConfigInvalid = "R020"

	CodeSnapshotStore = "R030"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Reconcile Errors (R001-R009)
	// ============================================

	CodeInvalidElementType: {
		Category: CategoryReconcile,
		Message:  "Invalid element type",
		Detail:   "An element's type must be a non-empty host tag, a function component with a render function, or a stateful component with a constructor.",
	},
	CodeNoMountedRoot: {
		Category: CategoryReconcile,
		Message:  "No mounted root",
		Detail:   "UnmountTree was called on a container that has no tree mounted by this manager.",
	},
	CodeHostNodeUnavailable: {
		Category: CategoryReconcile,
		Message:  "Host node unavailable",
		Detail:   "The instance is not mounted. Host nodes exist only between mount and unmount.",
	},
	CodeLifecycleViolation: {
		Category: CategoryReconcile,
		Message:  "Instance lifecycle violation",
		Detail:   "Instances are mounted exactly once, updated only while mounted and unmounted exactly once.",
	},

	// ============================================
	// Fixture Errors (R010-R019)
	// ============================================

	CodeFixtureDecode: {
		Category: CategoryFixture,
		Message:  "Invalid element tree document",
		Detail:   "Element tree documents are YAML or JSON objects with a type, optional props and optional children.",
	},
	CodeUnknownComponent: {
		Category: CategoryFixture,
		Message:  "Unknown component",
		Detail:   "The document references a component name that is not registered.",
	},

	// ============================================
	// Config Errors (R020-R029)
	// ============================================

	CodeConfigInvalid: {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The project configuration failed validation.",
	},

	// ============================================
	// Storage Errors (R030-R039)
	// ============================================

	CodeSnapshotStore: {
		Category: CategoryStorage,
		Message:  "Snapshot store failure",
		Detail:   "Writing or reading a host tree snapshot failed.",
	},
}

// GetAllCodes returns all registered error codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
