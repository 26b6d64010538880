package repository

import (
	"errors"
	"net/http"
)

// Domain-level errors I prefer to bubble up from repository implementations.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
	// ErrRejected means the upstream refused the payload as invalid.
	ErrRejected = errors.New("rejected")
	// ErrUnavailable means the upstream could not be reached or failed on its side.
	// Readers may fall back to local data when they see it.
	ErrUnavailable = errors.New("upstream unavailable")
)

// MapStatus translates an upstream HTTP status to a domain error.
// I only map what I expect to handle explicitly at higher layers; 2xx maps to nil and
// anything unexpected is reported as unavailable.
func MapStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusConflict:
		return ErrConflict
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return ErrRejected
	default:
		return ErrUnavailable
	}
}
