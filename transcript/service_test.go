package transcript

import (
	"context"
	"encoding/json"
	"testing"

	apperrors "github.com/skillsenselab/transcript-api/errors"
	"github.com/skillsenselab/transcript-api/logger"
)

// fakeProvider is a scriptable Provider for service tests.
type fakeProvider struct {
	availability *Availability
	listErr      error

	records    []CaptionRecord
	fetchErrs  []error // consumed one per Fetch call; nil entries mean success
	fetchCalls int
	lastParams FetchParams
}

func (f *fakeProvider) ListAvailability(_ context.Context, videoID string) (*Availability, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.availability, nil
}

func (f *fakeProvider) Fetch(_ context.Context, params FetchParams) ([]CaptionRecord, error) {
	f.fetchCalls++
	f.lastParams = params
	if len(f.fetchErrs) > 0 {
		err := f.fetchErrs[0]
		f.fetchErrs = f.fetchErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.records, nil
}

func availabilityEnDe() *Availability {
	return &Availability{
		VideoID: "vid1",
		Transcripts: []Transcript{
			{LanguageCode: "en", LanguageName: "English", IsGenerated: true, IsTranslatable: true,
				TranslationLanguages: []TranslationLanguage{{LanguageCode: "de", LanguageName: "German"}}},
			{LanguageCode: "de", LanguageName: "German"},
		},
	}
}

func newTestService(p Provider) *Service {
	return NewService(p, logger.NewDefault("test"))
}

func TestFetch_FirstMatchWins(t *testing.T) {
	p := &fakeProvider{
		availability: availabilityEnDe(),
		records:      []CaptionRecord{{Text: "hallo", Start: 0, Duration: 1}},
	}
	svc := newTestService(p)

	payload, err := svc.Fetch(context.Background(), Request{
		VideoID:   "vid1",
		Languages: []string{"fr", "de", "en"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Language != "de" {
		t.Errorf("expected first requested language present in the set (de), got %s", payload.Language)
	}
	if p.lastParams.LanguageCode != "de" {
		t.Errorf("expected fetch against de, got %s", p.lastParams.LanguageCode)
	}
}

func TestFetch_DefaultsToEnglishAndJSON(t *testing.T) {
	p := &fakeProvider{
		availability: availabilityEnDe(),
		records:      []CaptionRecord{{Text: "hi", Start: 0.5, Duration: 1.5}},
	}
	svc := newTestService(p)

	payload, err := svc.Fetch(context.Background(), Request{VideoID: "vid1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Format != FormatJSON {
		t.Errorf("expected default format json, got %s", payload.Format)
	}
	if payload.Language != "en" {
		t.Errorf("expected default language en, got %s", payload.Language)
	}
	if len(payload.Records) != 1 {
		t.Fatalf("expected records in json payload, got %d", len(payload.Records))
	}
}

func TestFetch_NoTranscriptFound(t *testing.T) {
	p := &fakeProvider{availability: &Availability{VideoID: "vid1"}}
	svc := newTestService(p)

	for _, format := range []string{FormatJSON, FormatText, FormatSRT, FormatWebVTT} {
		_, err := svc.Fetch(context.Background(), Request{VideoID: "vid1", Format: format})
		appErr, ok := apperrors.AsAppError(err)
		if !ok {
			t.Fatalf("format %s: expected AppError, got %v", format, err)
		}
		if appErr.Code != apperrors.ErrCodeNoTranscriptFound {
			t.Errorf("format %s: expected NO_TRANSCRIPT_FOUND, got %v", format, err)
		}
		if appErr.HTTPStatus != 404 {
			t.Errorf("format %s: expected 404, got %d", format, appErr.HTTPStatus)
		}
	}
	if p.fetchCalls != 0 {
		t.Errorf("fetch should not be attempted without a matching track, got %d calls", p.fetchCalls)
	}
}

func TestFetch_TranslationUnavailable_NotTranslatable(t *testing.T) {
	p := &fakeProvider{availability: availabilityEnDe()}
	svc := newTestService(p)

	// The de track is not translatable.
	_, err := svc.Fetch(context.Background(), Request{
		VideoID:     "vid1",
		Languages:   []string{"de"},
		TranslateTo: "fr",
	})
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeTranslationUnavailable {
		t.Fatalf("expected TRANSLATION_UNAVAILABLE, got %v", err)
	}
	if p.fetchCalls != 0 {
		t.Errorf("translation check must happen before fetch, got %d fetch calls", p.fetchCalls)
	}
}

func TestFetch_TranslationUnavailable_TargetNotListed(t *testing.T) {
	p := &fakeProvider{availability: availabilityEnDe()}
	svc := newTestService(p)

	// en is translatable, but only to de.
	_, err := svc.Fetch(context.Background(), Request{
		VideoID:     "vid1",
		Languages:   []string{"en"},
		TranslateTo: "fr",
	})
	if apperrors.CodeOf(err) != apperrors.ErrCodeTranslationUnavailable {
		t.Fatalf("expected TRANSLATION_UNAVAILABLE, got %v", err)
	}
}

func TestFetch_Translated(t *testing.T) {
	p := &fakeProvider{
		availability: availabilityEnDe(),
		records:      []CaptionRecord{{Text: "hallo", Start: 0, Duration: 1}},
	}
	svc := newTestService(p)

	payload, err := svc.Fetch(context.Background(), Request{
		VideoID:     "vid1",
		Languages:   []string{"en"},
		TranslateTo: "de",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !payload.Translated {
		t.Error("expected translated payload")
	}
	if payload.Language != "de" {
		t.Errorf("expected result tagged with translation target, got %s", payload.Language)
	}
	if p.lastParams.TranslateTo != "de" {
		t.Errorf("expected translation passed to provider, got %q", p.lastParams.TranslateTo)
	}
}

func TestFetch_RetriesTransientExactlyOnce(t *testing.T) {
	p := &fakeProvider{
		availability: availabilityEnDe(),
		records:      []CaptionRecord{{Text: "ok", Start: 0, Duration: 1}},
		fetchErrs:    []error{apperrors.UpstreamInvalid("vid1")},
	}
	svc := newTestService(p)

	payload, err := svc.Fetch(context.Background(), Request{VideoID: "vid1"})
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if p.fetchCalls != 2 {
		t.Errorf("expected original attempt + one retry, got %d calls", p.fetchCalls)
	}
	if len(payload.Records) != 1 {
		t.Errorf("expected records after retry")
	}
}

func TestFetch_TransientSurfacesAfterSecondFailure(t *testing.T) {
	p := &fakeProvider{
		availability: availabilityEnDe(),
		fetchErrs: []error{
			apperrors.UpstreamInvalid("vid1"),
			apperrors.UpstreamInvalid("vid1"),
			apperrors.UpstreamInvalid("vid1"),
		},
	}
	svc := newTestService(p)

	_, err := svc.Fetch(context.Background(), Request{VideoID: "vid1"})
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeUpstreamInvalid {
		t.Fatalf("expected UPSTREAM_RESPONSE_INVALID, got %v", err)
	}
	if appErr.HTTPStatus != 502 {
		t.Errorf("expected 502, got %d", appErr.HTTPStatus)
	}
	if p.fetchCalls != 2 {
		t.Errorf("a third attempt must never be made, got %d calls", p.fetchCalls)
	}
}

func TestFetch_NoRetryOnOtherFailures(t *testing.T) {
	p := &fakeProvider{
		availability: availabilityEnDe(),
		fetchErrs:    []error{apperrors.RequestBlocked("vid1")},
	}
	svc := newTestService(p)

	_, err := svc.Fetch(context.Background(), Request{VideoID: "vid1"})
	if apperrors.CodeOf(err) != apperrors.ErrCodeRequestBlocked {
		t.Fatalf("expected REQUEST_BLOCKED, got %v", err)
	}
	if p.fetchCalls != 1 {
		t.Errorf("non-transient failures must not be retried, got %d calls", p.fetchCalls)
	}
}

func TestFetch_ListErrorsPropagate(t *testing.T) {
	p := &fakeProvider{listErr: apperrors.TranscriptsDisabled("vid1")}
	svc := newTestService(p)

	_, err := svc.Fetch(context.Background(), Request{VideoID: "vid1"})
	if apperrors.CodeOf(err) != apperrors.ErrCodeTranscriptsDisabled {
		t.Fatalf("expected TRANSCRIPTS_DISABLED, got %v", err)
	}
}

func TestFetch_SRTRendering(t *testing.T) {
	p := &fakeProvider{
		availability: availabilityEnDe(),
		records:      []CaptionRecord{{Text: "Hello", Start: 1.5, Duration: 2.0}},
	}
	svc := newTestService(p)

	payload, err := svc.Fetch(context.Background(), Request{VideoID: "vid1", Format: "srt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "1\n00:00:01,500 --> 00:00:03,500\nHello\n\n"
	if payload.Rendered != want {
		t.Errorf("srt payload mismatch:\n got %q\nwant %q", payload.Rendered, want)
	}
	if payload.Records != nil {
		t.Error("non-json payloads should not carry raw records")
	}
}

func TestFetch_JSONRoundTrip(t *testing.T) {
	records := []CaptionRecord{
		{Text: "one", Start: 0.25, Duration: 1.75},
		{Text: "two", Start: 2.0, Duration: 0.5},
	}
	p := &fakeProvider{availability: availabilityEnDe(), records: records}
	svc := newTestService(p)

	payload, err := svc.Fetch(context.Background(), Request{VideoID: "vid1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := json.Marshal(payload.Records)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back []CaptionRecord
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(back))
	}
	for i := range records {
		if back[i].Text != records[i].Text {
			t.Errorf("record %d text mismatch", i)
		}
		if diff := back[i].Start - records[i].Start; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("record %d start drifted: %f vs %f", i, back[i].Start, records[i].Start)
		}
		if diff := back[i].Duration - records[i].Duration; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("record %d duration drifted: %f vs %f", i, back[i].Duration, records[i].Duration)
		}
	}
}

func TestList_PassThrough(t *testing.T) {
	p := &fakeProvider{availability: availabilityEnDe()}
	svc := newTestService(p)

	availability, err := svc.List(context.Background(), "vid1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(availability.Transcripts) != 2 {
		t.Errorf("availability must be returned unmodified, got %d tracks", len(availability.Transcripts))
	}
}

func TestParseLanguages(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{"en"}},
		{"  ", []string{"en"}},
		{"en,de", []string{"en", "de"}},
		{" fr , de ,en", []string{"fr", "de", "en"}},
		{",,de,", []string{"de"}},
	}
	for _, tc := range cases {
		got := ParseLanguages(tc.in)
		if len(got) != len(tc.want) {
			t.Errorf("%q: got %v, want %v", tc.in, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%q: got %v, want %v", tc.in, got, tc.want)
				break
			}
		}
	}
}

func TestRequest_Normalize(t *testing.T) {
	r := Request{VideoID: "vid1", Format: "SRT", Languages: []string{" en "}}
	r.Normalize()
	if r.Format != "srt" {
		t.Errorf("format should be lowercased, got %s", r.Format)
	}
	if len(r.Languages) != 1 || r.Languages[0] != "en" {
		t.Errorf("languages should be trimmed, got %v", r.Languages)
	}

	empty := Request{VideoID: "vid1"}
	empty.Normalize()
	if len(empty.Languages) != 1 || empty.Languages[0] != DefaultLanguage {
		t.Errorf("languages must never be empty after normalization, got %v", empty.Languages)
	}
}
