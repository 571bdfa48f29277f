package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Transcript retrieval errors. These mirror the failure signals the upstream
// caption endpoints can produce for a video.
const (
	// ErrCodeNoTranscriptFound indicates no transcript matches any requested language.
	ErrCodeNoTranscriptFound ErrorCode = "NO_TRANSCRIPT_FOUND"
	// ErrCodeTranscriptsDisabled indicates the video owner has disabled captions.
	ErrCodeTranscriptsDisabled ErrorCode = "TRANSCRIPTS_DISABLED"
	// ErrCodeVideoNotFound indicates the video does not exist or is unavailable.
	ErrCodeVideoNotFound ErrorCode = "VIDEO_NOT_FOUND"
	// ErrCodeRequestBlocked indicates the upstream is blocking this server's IP.
	ErrCodeRequestBlocked ErrorCode = "REQUEST_BLOCKED"
	// ErrCodeTranslationUnavailable indicates the selected transcript cannot be
	// translated into the requested target language.
	ErrCodeTranslationUnavailable ErrorCode = "TRANSLATION_UNAVAILABLE"
	// ErrCodeUpstreamInvalid indicates a malformed or empty upstream caption
	// response. This is the only transient condition in the taxonomy.
	ErrCodeUpstreamInvalid ErrorCode = "UPSTREAM_RESPONSE_INVALID"
	// ErrCodeProvider indicates any other failure reported by the provider.
	ErrCodeProvider ErrorCode = "PROVIDER_ERROR"
)

// Request errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeUpstreamInvalid: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
