package transcript

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/skillsenselab/transcript-api/errors"
	"github.com/skillsenselab/transcript-api/logger"
	"github.com/skillsenselab/transcript-api/observability"
	"github.com/skillsenselab/transcript-api/resilience"
	"github.com/skillsenselab/transcript-api/transcript/format"
)

// fetchRetryAttempts bounds the transient fetch retry: the original attempt
// plus exactly one retry with identical parameters.
const fetchRetryAttempts = 2

// Service orchestrates transcript retrieval against a Provider. It is
// stateless per request; a single Service is shared across all requests.
type Service struct {
	provider Provider
	log      *logger.Logger
	tracer   trace.Tracer
	metrics  *observability.Metrics
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithMetrics attaches metric instruments to the service.
func WithMetrics(m *observability.Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a Service around the given provider. The provider handle
// is stored once at construction and treated as read-only thereafter.
func NewService(provider Provider, log *logger.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		provider: provider,
		log:      log.WithComponent("transcript"),
		tracer:   observability.Tracer(""),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Fetch retrieves and renders a transcript per the request contract:
// normalize languages, list availability, select first-match-wins, verify the
// translation target before fetching, fetch with a single bounded retry on
// the transient upstream condition, then render in the requested format.
func (s *Service) Fetch(ctx context.Context, req Request) (*Payload, error) {
	req.Normalize()

	ctx, span := s.tracer.Start(ctx, "transcript.Fetch", trace.WithAttributes(
		attribute.String("video.id", req.VideoID),
		attribute.String("transcript.format", req.Format),
	))
	defer span.End()

	start := time.Now()

	result, err := s.fetchResult(ctx, req)
	if err != nil {
		span.RecordError(err)
		s.metrics.RecordError(ctx, string(apperrors.CodeOf(err)))
		return nil, err
	}

	payload, err := s.render(req, result)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.metrics.RecordFetch(ctx, time.Since(start), result.LanguageCode, req.Format)
	s.log.Debug("transcript fetched", logger.Fields(
		logger.FieldVideoID, req.VideoID,
		logger.FieldLanguage, result.LanguageCode,
		logger.FieldFormat, req.Format,
		"cues", len(result.Records),
		"translated", result.Translated,
	))
	return payload, nil
}

// fetchResult runs the provider call sequence and returns the selected cues.
func (s *Service) fetchResult(ctx context.Context, req Request) (*Result, error) {
	availability, err := s.provider.ListAvailability(ctx, req.VideoID)
	if err != nil {
		return nil, err
	}

	selected, ok := availability.Find(req.Languages)
	if !ok {
		return nil, apperrors.NoTranscriptFound(req.VideoID, req.Languages)
	}

	// Translation is resolved before the fetch, as one linear step. A fetch
	// is never attempted against a track that cannot serve the target.
	if req.TranslateTo != "" && !selected.CanTranslateTo(req.TranslateTo) {
		return nil, apperrors.TranslationUnavailable(selected.LanguageCode, req.TranslateTo)
	}

	params := FetchParams{
		VideoID:            req.VideoID,
		LanguageCode:       selected.LanguageCode,
		TranslateTo:        req.TranslateTo,
		PreserveFormatting: req.PreserveFormatting,
	}

	records, err := resilience.Retry(ctx, resilience.RetryConfig{
		MaxAttempts:    fetchRetryAttempts,
		InitialBackoff: 50 * time.Millisecond,
		RetryIf:        apperrors.IsTransient,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			s.log.Warn("retrying transcript fetch", logger.Fields(
				logger.FieldVideoID, req.VideoID,
				"attempt", attempt,
				logger.FieldError, err.Error(),
			))
		},
	}, func() ([]CaptionRecord, error) {
		return s.provider.Fetch(ctx, params)
	})
	if err != nil {
		return nil, err
	}

	languageCode := selected.LanguageCode
	if req.TranslateTo != "" {
		languageCode = req.TranslateTo
	}

	return &Result{
		Records:      records,
		LanguageCode: languageCode,
		Translated:   req.TranslateTo != "",
	}, nil
}

// render produces the response payload for the requested format.
func (s *Service) render(req Request, result *Result) (*Payload, error) {
	payload := &Payload{
		VideoID:    req.VideoID,
		Format:     req.Format,
		Language:   result.LanguageCode,
		Translated: result.Translated,
	}

	if req.Format == FormatJSON {
		payload.Records = result.Records
		return payload, nil
	}

	formatter, ok := format.Lookup(req.Format)
	if !ok {
		return nil, apperrors.InvalidInput("format", "must be one of json, text, srt, webvtt")
	}
	payload.Rendered = formatter.Format(toCues(result.Records))
	return payload, nil
}

// List returns the full availability set unmodified; no filtering and no
// language preference is applied.
func (s *Service) List(ctx context.Context, videoID string) (*Availability, error) {
	ctx, span := s.tracer.Start(ctx, "transcript.List", trace.WithAttributes(
		attribute.String("video.id", videoID),
	))
	defer span.End()

	availability, err := s.provider.ListAvailability(ctx, videoID)
	if err != nil {
		span.RecordError(err)
		s.metrics.RecordError(ctx, string(apperrors.CodeOf(err)))
		return nil, err
	}
	return availability, nil
}

// toCues converts caption records to the format package's cue type.
func toCues(records []CaptionRecord) []format.Cue {
	cues := make([]format.Cue, len(records))
	for i, r := range records {
		cues[i] = format.Cue{Text: r.Text, Start: r.Start, Duration: r.Duration}
	}
	return cues
}
