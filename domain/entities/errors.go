package entities

import "errors"

// Fault classes a UIDriver may signal. The traversal engine treats all
// of them as recoverable by retry, backtrack or session recovery; none
// may surface as a crash.
var (
	ErrElementNotFound = errors.New("element not found")
	ErrTimeout         = errors.New("timeout waiting for element")
	ErrStaleElement    = errors.New("stale element reference")
)

// ErrDepartmentNotFound ends a targeted run: the requested department
// has no case-insensitive exact match in the option list.
var ErrDepartmentNotFound = errors.New("target department not found")

// IsDriverFault reports whether err is one of the driver fault classes
// worth retrying at the call site.
func IsDriverFault(err error) bool {
	return errors.Is(err, ErrElementNotFound) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrStaleElement)
}
