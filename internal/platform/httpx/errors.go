package httpx

import (
	"errors"
	"net/http"

	"github.com/seth-vargas/biztime/internal/shared"
)

// NotFound writes a 404 naming the lookup key that failed.
func NotFound(w http.ResponseWriter, key string) {
	JSON(w, http.StatusNotFound, ErrorBody{Error: key + " not found"})
}

// ServerError writes a 500 with a human readable description of the failed action.
func ServerError(w http.ResponseWriter, message string) {
	JSON(w, http.StatusInternalServerError, ErrorBody{Error: message})
}

// BadRequest writes a 400.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, ErrorBody{Error: message})
}

// Conflict writes a 409.
func Conflict(w http.ResponseWriter, message string) {
	JSON(w, http.StatusConflict, ErrorBody{Error: message})
}

// Unauthorized writes a 401.
func Unauthorized(w http.ResponseWriter) {
	JSON(w, http.StatusUnauthorized, ErrorBody{Error: shared.ErrUnauthorized.Error()})
}

// RespondError maps domain errors to HTTP responses. key names the resource
// identifier for the 404 body and message is used for any unexpected failure.
// It reports whether the error was an unexpected (500) failure.
func RespondError(w http.ResponseWriter, err error, key, message string) bool {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		NotFound(w, key)
	case errors.Is(err, shared.ErrDuplicate):
		Conflict(w, err.Error())
	case errors.Is(err, shared.ErrValidation):
		BadRequest(w, err.Error())
	case errors.Is(err, shared.ErrUnauthorized):
		Unauthorized(w)
	default:
		ServerError(w, message)
		return true
	}
	return false
}
