package handler

import (
	"net/http"

	apperrors "github.com/jwalitptl/anesthesia-api/pkg/errors"
)

// StatusFor maps application error kinds to HTTP status codes.
func StatusFor(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrNotFound:
		return http.StatusNotFound
	case apperrors.ErrBadRequest, apperrors.ErrForeignKey:
		return http.StatusBadRequest
	case apperrors.ErrUnauthorized, apperrors.ErrInvalidCredentials:
		return http.StatusUnauthorized
	case apperrors.ErrDuplicateName:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
