// Package transcript implements the transcript retrieval contract: language
// selection, translation checks, the bounded fetch retry, and output
// rendering. The actual caption extraction is delegated to a Provider.
package transcript

import "context"

// Provider is the external collaborator that retrieves caption data for a
// video. Implementations must be safe for concurrent use; the service holds
// one long-lived provider handle across all requests.
type Provider interface {
	// ListAvailability returns every caption track available for the video.
	// Fails with VideoNotFound, TranscriptsDisabled, or RequestBlocked.
	ListAvailability(ctx context.Context, videoID string) (*Availability, error)

	// Fetch retrieves the caption records for one track, optionally
	// translated. May fail with the transient UpstreamResponseInvalid
	// condition on a malformed or empty upstream response.
	Fetch(ctx context.Context, params FetchParams) ([]CaptionRecord, error)
}
