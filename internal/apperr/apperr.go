// Package apperr holds the error kinds shared by every feature package and their HTTP mapping.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("invalid input")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("resource conflict")
)

// HTTPStatuser is implemented by errors that know their own response status.
type HTTPStatuser interface {
	HTTPStatus() int
}

func NotFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

func Status(err error) int {
	var hs HTTPStatuser
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &hs):
		return hs.HTTPStatus()
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
