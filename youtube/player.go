package youtube

import "strings"

// Wire types for the subset of the innertube player response this client
// reads. Everything else in the payload is ignored.

type playerResponse struct {
	PlayabilityStatus playabilityStatus `json:"playabilityStatus"`
	Captions          captions          `json:"captions"`
}

type playabilityStatus struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type captions struct {
	Renderer *tracklistRenderer `json:"playerCaptionsTracklistRenderer"`
}

type tracklistRenderer struct {
	CaptionTracks        []captionTrack     `json:"captionTracks"`
	TranslationLanguages []wireTranslation  `json:"translationLanguages"`
}

type captionTrack struct {
	BaseURL        string   `json:"baseUrl"`
	Name           wireText `json:"name"`
	LanguageCode   string   `json:"languageCode"`
	Kind           string   `json:"kind"`
	IsTranslatable bool     `json:"isTranslatable"`
}

type wireTranslation struct {
	LanguageCode string   `json:"languageCode"`
	LanguageName wireText `json:"languageName"`
}

// wireText appears either as {"simpleText": ...} or {"runs": [{"text": ...}]}.
type wireText struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (t wireText) String() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	parts := make([]string, 0, len(t.Runs))
	for _, r := range t.Runs {
		parts = append(parts, r.Text)
	}
	return strings.Join(parts, "")
}

// timedtext json3 wire types.

type timedtext struct {
	Events []timedtextEvent `json:"events"`
}

type timedtextEvent struct {
	StartMs    int64          `json:"tStartMs"`
	DurationMs int64          `json:"dDurationMs"`
	Segs       []timedtextSeg `json:"segs"`
}

type timedtextSeg struct {
	UTF8 string `json:"utf8"`
}

// text concatenates the event's segments.
func (e timedtextEvent) text() string {
	var b strings.Builder
	for _, seg := range e.Segs {
		b.WriteString(seg.UTF8)
	}
	return b.String()
}
