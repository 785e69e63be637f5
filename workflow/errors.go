// workflow/errors.go
package workflow

import (
	"errors"
	"fmt"
)

// ValidationError means the input was malformed or incomplete. The message is
// safe to surface to the caller verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError means a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %s not found", e.Entity, e.ID) }

func NotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError means an invariant would be violated: the asset is not in the
// expected status, an active RMA already exists, the transfer was already
// completed. The engine never retries these; the caller decides.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func Conflictf(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// PermissionError means the actor lacks the role or site grant for the
// operation. SiteID gives the authorization layer enough context to decide.
type PermissionError struct {
	Message string
	SiteID  string
}

func (e *PermissionError) Error() string { return e.Message }

func Permissionf(siteID, format string, args ...interface{}) *PermissionError {
	return &PermissionError{Message: fmt.Sprintf(format, args...), SiteID: siteID}
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

func IsPermission(err error) bool {
	var e *PermissionError
	return errors.As(err, &e)
}
