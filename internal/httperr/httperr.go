// Package httperr maps domain errors to HTTP responses. It is shared by
// the API handlers and the authorize middleware so denial semantics stay
// identical everywhere.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"layman-go/internal/domain"
)

// Body is the JSON error payload. Code is the stable domain error code,
// not the HTTP status.
type Body struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Status returns the HTTP status code for a domain error. Unknown errors
// map to 500.
func Status(err error) int {
	var notFound *domain.NotFoundError
	var accessDenied *domain.AccessDeniedError
	var validation *domain.ValidationError
	var conflict *domain.ConflictError
	var unsupported *domain.UnsupportedMethodError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &accessDenied):
		return http.StatusForbidden
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &unsupported):
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Write serializes err as the JSON error body with the mapped status.
// Infrastructure errors are not echoed to the client.
func Write(w http.ResponseWriter, err error) {
	status := Status(err)

	body := Body{Code: code(err), Message: err.Error()}
	if status == http.StatusInternalServerError {
		body = Body{Code: status, Message: "internal server error"}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func code(err error) int {
	var notFound *domain.NotFoundError
	var accessDenied *domain.AccessDeniedError
	var validation *domain.ValidationError
	var conflict *domain.ConflictError
	var unsupported *domain.UnsupportedMethodError

	switch {
	case errors.As(err, &notFound):
		return notFound.Code
	case errors.As(err, &accessDenied):
		return accessDenied.Code
	case errors.As(err, &validation):
		return validation.Code
	case errors.As(err, &conflict):
		return conflict.Code
	case errors.As(err, &unsupported):
		return domain.CodeUnsupportedMethod
	default:
		return http.StatusInternalServerError
	}
}
