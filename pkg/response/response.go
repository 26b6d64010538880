// Package response holds the API's JSON envelopes and the error to status mapping.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/job-portal/internal/auth"
	"github.com/maxviazov/job-portal/internal/repository"
	"github.com/maxviazov/job-portal/internal/service"
)

// ErrorPayload is the error envelope every endpoint returns.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

type mapping struct {
	target  error
	status  int
	code    string
	message string
}

// Checked in order; the first errors.Is match wins.
var mappings = []mapping{
	{auth.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", ""},
	{auth.ErrForbidden, http.StatusForbidden, "forbidden", ""},
	{repository.ErrNotFound, http.StatusNotFound, "not_found", ""},
	{repository.ErrAlreadyExists, http.StatusConflict, "already_exists", ""},
	{repository.ErrConflict, http.StatusConflict, "conflict", ""},
	{service.ErrRoleClosed, http.StatusConflict, "role_closed", service.ErrRoleClosed.Error()},
	{repository.ErrRejected, http.StatusUnprocessableEntity, "rejected", ""},
	{repository.ErrUnavailable, http.StatusServiceUnavailable, "unavailable", "job roles are temporarily unavailable"},
}

// MapError converts a domain or infrastructure error into a status and payload.
// Unknown errors become a bare 500 so internals never leak to clients.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}
	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return m.status, ErrorPayload{Error: m.code, Message: m.message}
		}
	}
	return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
}

// WriteError writes the mapped error and aborts the chain.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	c.AbortWithStatusJSON(status, payload)
}

func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// WriteNoContent answers 204 for successful deletes.
func WriteNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
