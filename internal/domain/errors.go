// Package domain defines core types, interfaces, and errors for the
// publication catalog.
package domain

import "fmt"

// Stable numeric error codes carried in HTTP error bodies. Codes are part
// of the public API contract and must not be renumbered.
const (
	CodeInvalidParameter     = 2
	CodeLayerNotFound        = 15
	CodeLayerExists          = 17
	CodeMapExists            = 24
	CodeMapNotFound          = 26
	CodeUnauthorized         = 30
	CodeUnsupportedMethod    = 31
	CodeWorkspaceNotFound    = 40
	CodeInvalidWorkspaceName = 45
)

// NotFoundError indicates a resource was not found. It is also raised when
// a publication exists but the actor has no read access, so that private
// publications are indistinguishable from absent ones.
type NotFoundError struct {
	Code    int
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// AccessDeniedError indicates insufficient permissions on a resource whose
// existence the actor is already entitled to know.
type AccessDeniedError struct {
	Code    int
	Message string
}

func (e *AccessDeniedError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Code    int
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError indicates a conflict (e.g., duplicate publication name).
type ConflictError struct {
	Code    int
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// UnsupportedMethodError indicates an HTTP method the authorizer does not
// recognize for the addressed resource. Carries the offending method.
type UnsupportedMethodError struct {
	Method string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("unsupported HTTP method %s", e.Method)
}

// ErrWorkspaceNotFound creates the not-found error for an absent workspace.
func ErrWorkspaceNotFound(workspace string) *NotFoundError {
	return &NotFoundError{
		Code:    CodeWorkspaceNotFound,
		Message: fmt.Sprintf("workspace %q does not exist", workspace),
	}
}

// ErrPublicationNotFound creates the type-specific not-found error for a
// publication. The numeric code differs for layers and maps.
func ErrPublicationNotFound(ptype, workspace, name string) *NotFoundError {
	code := CodeLayerNotFound
	if ptype == TypeMap {
		code = CodeMapNotFound
	}
	return &NotFoundError{
		Code:    code,
		Message: fmt.Sprintf("%s %q was not found in workspace %q", ptype, name, workspace),
	}
}

// ErrPublicationExists creates the type-specific conflict error for a
// publication name already taken within its workspace.
func ErrPublicationExists(ptype, workspace, name string) *ConflictError {
	code := CodeLayerExists
	if ptype == TypeMap {
		code = CodeMapExists
	}
	return &ConflictError{
		Code:    code,
		Message: fmt.Sprintf("%s %q already exists in workspace %q", ptype, name, workspace),
	}
}

// ErrUnauthorized creates an AccessDeniedError with a formatted message.
func ErrUnauthorized(format string, args ...interface{}) *AccessDeniedError {
	return &AccessDeniedError{Code: CodeUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with the given code and a
// formatted message.
func ErrValidation(code int, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrUnsupportedMethod creates an UnsupportedMethodError for the method.
func ErrUnsupportedMethod(method string) *UnsupportedMethodError {
	return &UnsupportedMethodError{Method: method}
}
