package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeVideoNotFound, "gone", http.StatusNotFound)
	if err.Code != ErrCodeVideoNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeVideoNotFound, err.Code)
	}
	if err.Detail != "gone" {
		t.Errorf("expected detail 'gone', got %q", err.Detail)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("VIDEO_NOT_FOUND should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeUpstreamInvalid, "bad upstream", http.StatusBadGateway)
	if !err.Retryable {
		t.Error("UPSTREAM_RESPONSE_INVALID should be retryable")
	}
}

func TestTaxonomy_StatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  *AppError
		code ErrorCode
		http int
	}{
		{"no transcript", NoTranscriptFound("abc", []string{"en"}), ErrCodeNoTranscriptFound, http.StatusNotFound},
		{"disabled", TranscriptsDisabled("abc"), ErrCodeTranscriptsDisabled, http.StatusForbidden},
		{"video not found", VideoNotFound("abc"), ErrCodeVideoNotFound, http.StatusNotFound},
		{"blocked", RequestBlocked("abc"), ErrCodeRequestBlocked, http.StatusServiceUnavailable},
		{"translation", TranslationUnavailable("en", "xx"), ErrCodeTranslationUnavailable, http.StatusBadRequest},
		{"upstream", UpstreamInvalid("abc"), ErrCodeUpstreamInvalid, http.StatusBadGateway},
		{"provider", Provider(fmt.Errorf("boom")), ErrCodeProvider, http.StatusBadRequest},
	}
	for _, tc := range cases {
		if tc.err.Code != tc.code {
			t.Errorf("%s: expected code %s, got %s", tc.name, tc.code, tc.err.Code)
		}
		if tc.err.HTTPStatus != tc.http {
			t.Errorf("%s: expected status %d, got %d", tc.name, tc.http, tc.err.HTTPStatus)
		}
	}
}

func TestTaxonomy_OnlyUpstreamInvalidRetryable(t *testing.T) {
	all := []*AppError{
		NoTranscriptFound("abc", nil),
		TranscriptsDisabled("abc"),
		VideoNotFound("abc"),
		RequestBlocked("abc"),
		TranslationUnavailable("en", "de"),
		Provider(nil),
		Internal(nil),
	}
	for _, e := range all {
		if e.Retryable {
			t.Errorf("%s should not be retryable", e.Code)
		}
	}
	if !UpstreamInvalid("abc").Retryable {
		t.Error("UPSTREAM_RESPONSE_INVALID should be retryable")
	}
}

func TestAppError_Error_IncludesCause(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := Provider(cause)
	if !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("expected cause in error string, got %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to match the cause")
	}
}

func TestAppError_Detail_SelfContained(t *testing.T) {
	err := NoTranscriptFound("dQw4w9WgXcQ", []string{"fr", "de"})
	if !strings.Contains(err.Detail, "dQw4w9WgXcQ") {
		t.Errorf("detail should name the video, got %q", err.Detail)
	}
	if !strings.Contains(err.Detail, "fr") {
		t.Errorf("detail should name the requested languages, got %q", err.Detail)
	}
}

func TestToResponse(t *testing.T) {
	err := TranscriptsDisabled("abc")
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeTranscriptsDisabled {
		t.Errorf("expected code in response, got %s", resp.Error.Code)
	}
	if resp.Error.Detail == "" {
		t.Error("expected non-empty detail")
	}
}

func TestIsTransient(t *testing.T) {
	if !IsTransient(UpstreamInvalid("abc")) {
		t.Error("UpstreamInvalid should be transient")
	}
	if IsTransient(VideoNotFound("abc")) {
		t.Error("VideoNotFound should not be transient")
	}
	if IsTransient(fmt.Errorf("plain error")) {
		t.Error("plain errors should not be transient")
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", VideoNotFound("abc"))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to unwrap")
	}
	if appErr.Code != ErrCodeVideoNotFound {
		t.Errorf("expected VIDEO_NOT_FOUND, got %s", appErr.Code)
	}
}
