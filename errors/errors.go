// Package errors provides unified error handling for the transcript service.
// It implements structured error types with error codes, HTTP status mapping,
// and retryable detection so the HTTP boundary can translate every provider
// failure into a stable client-visible taxonomy.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Detail is a human-readable, self-contained description of the failure.
	Detail string `json:"detail"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, detail string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Detail:     detail,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Transcript Error Constructors ---

// NoTranscriptFound creates an AppError for a video with no transcript in any
// of the requested languages.
func NoTranscriptFound(videoID string, languages []string) *AppError {
	return &AppError{
		Code:       ErrCodeNoTranscriptFound,
		Detail:     fmt.Sprintf("No transcript found for video %s in languages %v. This video may not have captions available, or it might be a YouTube Shorts video.", videoID, languages),
		HTTPStatus: http.StatusNotFound,
	}
}

// TranscriptsDisabled creates an AppError for a video with captions disabled.
func TranscriptsDisabled(videoID string) *AppError {
	return &AppError{
		Code:       ErrCodeTranscriptsDisabled,
		Detail:     fmt.Sprintf("Transcripts are disabled for video %s.", videoID),
		HTTPStatus: http.StatusForbidden,
	}
}

// VideoNotFound creates an AppError for a video that does not exist or is unavailable.
func VideoNotFound(videoID string) *AppError {
	return &AppError{
		Code:       ErrCodeVideoNotFound,
		Detail:     fmt.Sprintf("Video %s does not exist or is unavailable.", videoID),
		HTTPStatus: http.StatusNotFound,
	}
}

// RequestBlocked creates an AppError for an upstream that is blocking this
// server's origin IP.
func RequestBlocked(videoID string) *AppError {
	return &AppError{
		Code:       ErrCodeRequestBlocked,
		Detail:     fmt.Sprintf("Requests for video %s are being blocked by the upstream for this server IP. Configure a proxy to continue.", videoID),
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// TranslationUnavailable creates an AppError for a transcript that does not
// offer the requested translation target.
func TranslationUnavailable(languageCode, target string) *AppError {
	return &AppError{
		Code:       ErrCodeTranslationUnavailable,
		Detail:     fmt.Sprintf("The %s transcript cannot be translated to %s.", languageCode, target),
		HTTPStatus: http.StatusBadRequest,
	}
}

// UpstreamInvalid creates an AppError for a malformed or empty upstream
// caption response. This condition is transient and retryable.
func UpstreamInvalid(videoID string) *AppError {
	return &AppError{
		Code:       ErrCodeUpstreamInvalid,
		Detail:     fmt.Sprintf("The upstream returned a malformed caption response for video %s. Please try again.", videoID),
		HTTPStatus: http.StatusBadGateway,
		Retryable:  true,
	}
}

// Provider creates an AppError for any other failure reported by the
// transcript provider.
func Provider(cause error) *AppError {
	detail := "The transcript provider reported an error."
	if cause != nil {
		detail = fmt.Sprintf("Error: %v", cause)
	}
	return &AppError{
		Code:       ErrCodeProvider,
		Detail:     detail,
		HTTPStatus: http.StatusBadRequest,
		Cause:      cause,
	}
}

// --- Request Error Constructors ---

// InvalidInput creates an AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	return &AppError{
		Code:       ErrCodeInvalidInput,
		Detail:     fmt.Sprintf("Invalid input for %s: %s", field, reason),
		HTTPStatus: http.StatusBadRequest,
	}
}

// Validation creates an AppError for validation errors.
func Validation(detail string) *AppError {
	return &AppError{
		Code:       ErrCodeInvalidInput,
		Detail:     detail,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MissingField creates an AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code:       ErrCodeMissingField,
		Detail:     fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest,
	}
}

// NotFound creates an AppError for a resource that was not found.
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       ErrCodeNotFound,
		Detail:     fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// Internal creates an AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       ErrCodeInternal,
		Detail:     "An unexpected error occurred. Please try again.",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}
