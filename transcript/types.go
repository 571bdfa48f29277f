package transcript

import "strings"

// Output formats supported by the service.
const (
	FormatJSON   = "json"
	FormatText   = "text"
	FormatSRT    = "srt"
	FormatWebVTT = "webvtt"
)

// DefaultLanguage is used when the caller supplies no language preference.
const DefaultLanguage = "en"

// CaptionRecord is one timed caption cue. Records are produced only by the
// provider; the service never constructs them itself.
type CaptionRecord struct {
	// Text is the caption text.
	Text string `json:"text"`
	// Start is the cue start time in seconds.
	Start float64 `json:"start"`
	// Duration is the cue duration in seconds.
	Duration float64 `json:"duration"`
}

// TranslationLanguage is a language a transcript can be translated into.
type TranslationLanguage struct {
	LanguageCode string `json:"language_code"`
	LanguageName string `json:"language"`
}

// Transcript describes one available caption track for a video.
type Transcript struct {
	// LanguageCode is the BCP-47 code of the track (e.g. "en").
	LanguageCode string `json:"language_code"`
	// LanguageName is the human-readable language name.
	LanguageName string `json:"language"`
	// IsGenerated is true for auto-generated captions, false for human-authored.
	IsGenerated bool `json:"is_generated"`
	// IsTranslatable is true if the track can be machine-translated.
	IsTranslatable bool `json:"is_translatable"`
	// TranslationLanguages lists the translation targets. Empty whenever
	// IsTranslatable is false.
	TranslationLanguages []TranslationLanguage `json:"translation_languages"`
}

// CanTranslateTo reports whether target is among the track's translation targets.
func (t *Transcript) CanTranslateTo(target string) bool {
	if !t.IsTranslatable {
		return false
	}
	for _, tl := range t.TranslationLanguages {
		if tl.LanguageCode == target {
			return true
		}
	}
	return false
}

// Availability is the full set of caption tracks available for a video.
type Availability struct {
	VideoID     string       `json:"video_id"`
	Transcripts []Transcript `json:"available_transcripts"`
}

// Find returns the first transcript whose language code matches the
// highest-priority entry of languages present in the set. Selection is
// first-match-wins over the caller's priority order, not best-quality-wins.
func (a *Availability) Find(languages []string) (*Transcript, bool) {
	for _, lang := range languages {
		for i := range a.Transcripts {
			if a.Transcripts[i].LanguageCode == lang {
				return &a.Transcripts[i], true
			}
		}
	}
	return nil, false
}

// Result is a fetched transcript tagged with the language actually selected.
type Result struct {
	// Records are the caption cues in chronological order.
	Records []CaptionRecord `json:"records"`
	// LanguageCode is the language actually selected, which may differ from
	// the caller's first preference.
	LanguageCode string `json:"language_code"`
	// Translated is true when the records come from a machine translation.
	Translated bool `json:"translated"`
}

// Request holds normalized transcript retrieval parameters.
type Request struct {
	// VideoID is the opaque video identifier. Required.
	VideoID string `json:"video_id" validate:"required"`
	// Languages is the caller's language preference in priority order.
	Languages []string `json:"languages"`
	// Format is the output format. Defaults to json.
	Format string `json:"format" validate:"omitempty,oneof=json text srt webvtt"`
	// TranslateTo requests a machine-translated variant.
	TranslateTo string `json:"translate_to"`
	// PreserveFormatting keeps embedded markup (e.g. <i>, <b>) in caption text.
	PreserveFormatting bool `json:"preserve_formatting"`
}

// Normalize applies defaults and cleans the language list in place.
// After normalization Languages is never empty and Format is never empty.
func (r *Request) Normalize() {
	r.Languages = NormalizeLanguages(r.Languages)
	if r.Format == "" {
		r.Format = FormatJSON
	} else {
		r.Format = strings.ToLower(r.Format)
	}
}

// NormalizeLanguages trims each entry, drops empties, and falls back to the
// default language when nothing usable remains. Codes stay case-sensitive as
// supplied.
func NormalizeLanguages(languages []string) []string {
	out := make([]string, 0, len(languages))
	for _, lang := range languages {
		lang = strings.TrimSpace(lang)
		if lang != "" {
			out = append(out, lang)
		}
	}
	if len(out) == 0 {
		return []string{DefaultLanguage}
	}
	return out
}

// ParseLanguages splits a comma-delimited preference string into a normalized
// priority list.
func ParseLanguages(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return []string{DefaultLanguage}
	}
	return NormalizeLanguages(strings.Split(csv, ","))
}

// FetchParams are the provider-level parameters for retrieving caption records.
type FetchParams struct {
	VideoID            string
	LanguageCode       string
	TranslateTo        string
	PreserveFormatting bool
}

// Payload is the rendered response for one retrieval: the echoed video ID,
// the effective format, and the formatted transcript.
type Payload struct {
	VideoID    string
	Format     string
	Language   string
	Translated bool
	// Records carries the cues for json rendering.
	Records []CaptionRecord
	// Rendered carries the formatted string for text/srt/webvtt rendering.
	Rendered string
}
