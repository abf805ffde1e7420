package reconcile

import (
	rerrors "github.com/vango-dev/reconciler/internal/errors"
)

// Errors returned by the reconciler. Match them with errors.Is.
var (
	// ErrInvalidElementType is returned when an element's type is neither a
	// host tag nor a component.
	ErrInvalidElementType = rerrors.New(rerrors.CodeInvalidElementType)

	// ErrNoMountedRoot is returned by UnmountTree for an unknown container.
	ErrNoMountedRoot = rerrors.New(rerrors.CodeNoMountedRoot)

	// ErrHostNodeUnavailable is returned by HostNode on an instance that is
	// not mounted.
	ErrHostNodeUnavailable = rerrors.New(rerrors.CodeHostNodeUnavailable)

	// ErrLifecycleViolation is returned when an instance is mounted twice,
	// updated while not mounted, or unmounted while not mounted.
	ErrLifecycleViolation = rerrors.New(rerrors.CodeLifecycleViolation)
)
