package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a lookup or removal miss: a patient id absent
// from the directory, a service absent from an appointment, or a record
// absent from the archive.
var ErrNotFound = errors.New("not found")

// UnknownPatientTypeError reports a patient type tag that no registered
// constructor resolves. The offending tag is carried verbatim.
type UnknownPatientTypeError struct {
	Tag string
}

// Error implements the error interface.
func (e *UnknownPatientTypeError) Error() string {
	return fmt.Sprintf("unknown patient type: %q", e.Tag)
}

// InvalidPatientError reports that a directory received something that
// is not a recognized patient entity.
type InvalidPatientError struct {
	Reason string
}

// Error implements the error interface.
func (e *InvalidPatientError) Error() string {
	if e.Reason == "" {
		return "invalid patient entity"
	}
	return fmt.Sprintf("invalid patient entity: %s", e.Reason)
}

// PermissionDeniedError reports a requester role outside the authorized
// set for an operation.
type PermissionDeniedError struct {
	Role string
}

// Error implements the error interface.
func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied for role %q", e.Role)
}
