package errors

import (
	stderrors "errors"
)

// ErrorResponse is the JSON structure returned to clients.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the error details sent to clients. Detail is always a
// self-contained human-readable string; callers never need server logs to
// interpret a response.
type ErrorBody struct {
	Code      ErrorCode `json:"code"`
	Detail    string    `json:"detail"`
	Retryable bool      `json:"retryable"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:      e.Code,
			Detail:    e.Detail,
			Retryable: e.Retryable,
		},
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the ErrorCode of err, or empty string if err is not an AppError.
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// IsTransient reports whether err is the transient malformed-upstream
// condition that the fetch path is allowed to retry exactly once.
func IsTransient(err error) bool {
	return CodeOf(err) == ErrCodeUpstreamInvalid
}
