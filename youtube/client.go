// Package youtube implements the transcript.Provider interface against
// YouTube's innertube player API and timedtext caption endpoint. One Client
// is constructed at startup and shared read-only across all requests.
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/skillsenselab/transcript-api/errors"
	"github.com/skillsenselab/transcript-api/logger"
	"github.com/skillsenselab/transcript-api/observability"
	"github.com/skillsenselab/transcript-api/transcript"
)

const (
	apiKeyMarker   = `"INNERTUBE_API_KEY":"`
	recaptchaClass = `class="g-recaptcha"`

	// The android client is served caption metadata without consent walls.
	innertubeClientName    = "ANDROID"
	innertubeClientVersion = "20.10.38"
)

// formattingTags strips embedded caption markup such as <i> and <b> when
// the caller did not ask to preserve formatting.
var formattingTags = regexp.MustCompile(`</?[^>]+>`)

// Client talks to YouTube's caption endpoints. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	config     Config
	log        *logger.Logger
	tracer     trace.Tracer
}

// NewClient creates a Client from config.
func NewClient(cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.timeout()},
		config:     cfg,
		log:        log.WithComponent("youtube"),
		tracer:     observability.Tracer(""),
	}, nil
}

// ListAvailability implements transcript.Provider.
func (c *Client) ListAvailability(ctx context.Context, videoID string) (*transcript.Availability, error) {
	ctx, span := c.tracer.Start(ctx, "youtube.ListAvailability", trace.WithAttributes(
		attribute.String("video.id", videoID),
	))
	defer span.End()

	renderer, err := c.captionRenderer(ctx, videoID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	availability := &transcript.Availability{
		VideoID:     videoID,
		Transcripts: make([]transcript.Transcript, 0, len(renderer.CaptionTracks)),
	}
	for _, track := range renderer.CaptionTracks {
		availability.Transcripts = append(availability.Transcripts, toTranscript(track, renderer.TranslationLanguages))
	}
	return availability, nil
}

// Fetch implements transcript.Provider.
func (c *Client) Fetch(ctx context.Context, params transcript.FetchParams) ([]transcript.CaptionRecord, error) {
	ctx, span := c.tracer.Start(ctx, "youtube.Fetch", trace.WithAttributes(
		attribute.String("video.id", params.VideoID),
		attribute.String("language", params.LanguageCode),
	))
	defer span.End()

	renderer, err := c.captionRenderer(ctx, params.VideoID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	var track *captionTrack
	for i := range renderer.CaptionTracks {
		if renderer.CaptionTracks[i].LanguageCode == params.LanguageCode {
			track = &renderer.CaptionTracks[i]
			break
		}
	}
	if track == nil {
		return nil, apperrors.NoTranscriptFound(params.VideoID, []string{params.LanguageCode})
	}

	captionURL, err := buildCaptionURL(track.BaseURL, params.TranslateTo)
	if err != nil {
		return nil, apperrors.Provider(fmt.Errorf("caption url: %w", err))
	}

	body, err := c.get(ctx, params.VideoID, captionURL)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, apperrors.UpstreamInvalid(params.VideoID)
	}

	var tt timedtext
	if err := json.Unmarshal(body, &tt); err != nil {
		return nil, apperrors.UpstreamInvalid(params.VideoID).WithCause(err)
	}

	records := make([]transcript.CaptionRecord, 0, len(tt.Events))
	for _, event := range tt.Events {
		text := strings.TrimRight(event.text(), "\n")
		if text == "" {
			continue
		}
		if !params.PreserveFormatting {
			text = formattingTags.ReplaceAllString(text, "")
		}
		records = append(records, transcript.CaptionRecord{
			Text:     text,
			Start:    float64(event.StartMs) / 1000.0,
			Duration: float64(event.DurationMs) / 1000.0,
		})
	}
	return records, nil
}

// captionRenderer fetches the player response for a video and extracts its
// caption tracklist, mapping playability failures to the error taxonomy.
func (c *Client) captionRenderer(ctx context.Context, videoID string) (*tracklistRenderer, error) {
	apiKey, err := c.innertubeAPIKey(ctx, videoID)
	if err != nil {
		return nil, err
	}

	player, err := c.fetchPlayer(ctx, videoID, apiKey)
	if err != nil {
		return nil, err
	}

	if player.PlayabilityStatus.Status == "ERROR" {
		return nil, apperrors.VideoNotFound(videoID)
	}
	if player.Captions.Renderer == nil || len(player.Captions.Renderer.CaptionTracks) == 0 {
		return nil, apperrors.TranscriptsDisabled(videoID)
	}
	return player.Captions.Renderer, nil
}

// innertubeAPIKey fetches the watch page and scrapes the innertube API key.
func (c *Client) innertubeAPIKey(ctx context.Context, videoID string) (string, error) {
	watchURL := fmt.Sprintf("%s/watch?v=%s", c.config.BaseURL, url.QueryEscape(videoID))
	body, err := c.get(ctx, videoID, watchURL)
	if err != nil {
		return "", err
	}

	html := string(body)
	if strings.Contains(html, recaptchaClass) {
		return "", apperrors.RequestBlocked(videoID)
	}
	key := extractBetween(html, apiKeyMarker, `"`)
	if key == "" {
		// The watch page occasionally comes back truncated or as a consent
		// interstitial without the config blob. Treat as transient.
		return "", apperrors.UpstreamInvalid(videoID)
	}
	return key, nil
}

// fetchPlayer calls the innertube player endpoint for a video.
func (c *Client) fetchPlayer(ctx context.Context, videoID, apiKey string) (*playerResponse, error) {
	endpoint := fmt.Sprintf("%s/youtubei/v1/player?key=%s", c.config.BaseURL, url.QueryEscape(apiKey))
	payload := map[string]any{
		"context": map[string]any{
			"client": map[string]any{
				"clientName":    innertubeClientName,
				"clientVersion": innertubeClientVersion,
			},
		},
		"videoId": videoID,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Provider(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Provider(err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setCommonHeaders(req)

	respBody, err := c.do(req, videoID)
	if err != nil {
		return nil, err
	}

	var player playerResponse
	if err := json.Unmarshal(respBody, &player); err != nil {
		return nil, apperrors.UpstreamInvalid(videoID).WithCause(err)
	}
	return &player, nil
}

// get performs a GET with the client's common headers.
func (c *Client) get(ctx context.Context, videoID, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperrors.Provider(err)
	}
	c.setCommonHeaders(req)
	return c.do(req, videoID)
}

// do executes the request and maps transport and status failures.
func (c *Client) do(req *http.Request, videoID string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Provider(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.UpstreamInvalid(videoID).WithCause(err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden:
		return nil, apperrors.RequestBlocked(videoID)
	case resp.StatusCode >= 400:
		return nil, apperrors.Provider(fmt.Errorf("upstream status %d for %s", resp.StatusCode, req.URL.Path))
	}
	return body, nil
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept-Language", c.config.AcceptLanguage)
}

// buildCaptionURL normalizes a track base URL to the json3 caption format and
// applies the translation target when requested.
func buildCaptionURL(baseURL, translateTo string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("fmt", "json3")
	if translateTo != "" {
		q.Set("tlang", translateTo)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// toTranscript maps a wire caption track onto the domain descriptor. The
// translation list is attached only to translatable tracks so descriptors
// keep the invariant that non-translatable tracks advertise no targets.
func toTranscript(track captionTrack, translations []wireTranslation) transcript.Transcript {
	t := transcript.Transcript{
		LanguageCode:   track.LanguageCode,
		LanguageName:   track.Name.String(),
		IsGenerated:    track.Kind == "asr",
		IsTranslatable: track.IsTranslatable,
	}
	if track.IsTranslatable {
		t.TranslationLanguages = make([]transcript.TranslationLanguage, 0, len(translations))
		for _, tl := range translations {
			t.TranslationLanguages = append(t.TranslationLanguages, transcript.TranslationLanguage{
				LanguageCode: tl.LanguageCode,
				LanguageName: tl.LanguageName.String(),
			})
		}
	}
	return t
}

// extractBetween returns the substring of s between the first occurrence of
// start and the next occurrence of end, or "" if either marker is missing.
func extractBetween(s, start, end string) string {
	i := strings.Index(s, start)
	if i < 0 {
		return ""
	}
	s = s[i+len(start):]
	j := strings.Index(s, end)
	if j < 0 {
		return ""
	}
	return s[:j]
}
