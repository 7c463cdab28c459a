package handler

import (
	apperrors "github.com/jwalitptl/anesthesia-api/pkg/errors"
)

// Response is the envelope used for error payloads. Successful operations
// return their documented shapes directly.
type Response struct {
	Status  string              `json:"status"`
	Code    apperrors.ErrorCode `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// NewAppErrorResponse keeps the machine-distinguishable error kind
// alongside the human-readable message.
func NewAppErrorResponse(err error) *Response {
	return &Response{
		Status:  "error",
		Code:    apperrors.CodeOf(err),
		Message: err.Error(),
	}
}
