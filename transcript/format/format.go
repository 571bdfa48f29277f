// Package format renders caption cues into the supported subtitle output
// grammars. Formatters are pure functions over an ordered cue sequence; the
// exact output grammar is part of the service's external contract.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Cue is one timed caption entry.
type Cue struct {
	Text     string
	Start    float64
	Duration float64
}

// Formatter renders an ordered cue sequence to a string.
type Formatter interface {
	Format(cues []Cue) string
}

// Names of the string formatters. The json format is rendered structurally by
// the HTTP layer and has no string formatter.
const (
	NameText   = "text"
	NameSRT    = "srt"
	NameWebVTT = "webvtt"
)

var registry = map[string]Formatter{
	NameText:   TextFormatter{},
	NameSRT:    SRTFormatter{},
	NameWebVTT: WebVTTFormatter{},
}

// Lookup returns the formatter registered under name.
func Lookup(name string) (Formatter, bool) {
	f, ok := registry[strings.ToLower(name)]
	return f, ok
}

// TextFormatter renders caption texts one per line with no timing metadata.
type TextFormatter struct{}

// Format implements Formatter.
func (TextFormatter) Format(cues []Cue) string {
	var b strings.Builder
	for i, cue := range cues {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(cue.Text)
	}
	return b.String()
}

// SRTFormatter renders SubRip output: a 1-based integer cue index, a
// "HH:MM:SS,mmm --> HH:MM:SS,mmm" timestamp line (end = start + duration),
// the caption text, and a blank line after every cue.
type SRTFormatter struct{}

// Format implements Formatter.
func (SRTFormatter) Format(cues []Cue) string {
	var b strings.Builder
	for i, cue := range cues {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1,
			srtTimestamp(cue.Start),
			srtTimestamp(cue.Start+cue.Duration),
			cue.Text,
		)
	}
	return b.String()
}

// WebVTTFormatter renders WebVTT output: the literal WEBVTT header, a blank
// line, then "HH:MM:SS.mmm --> HH:MM:SS.mmm" cues each followed by a blank line.
type WebVTTFormatter struct{}

// Format implements Formatter.
func (WebVTTFormatter) Format(cues []Cue) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, cue := range cues {
		fmt.Fprintf(&b, "%s --> %s\n%s\n\n",
			vttTimestamp(cue.Start),
			vttTimestamp(cue.Start+cue.Duration),
			cue.Text,
		)
	}
	return b.String()
}

// splitClock breaks a time in seconds into clock components, rounding to
// whole milliseconds.
func splitClock(seconds float64) (h, m, s, ms int) {
	if seconds < 0 {
		seconds = 0
	}
	totalMs := int(math.Round(seconds * 1000))
	ms = totalMs % 1000
	totalSec := totalMs / 1000
	s = totalSec % 60
	m = (totalSec / 60) % 60
	h = totalSec / 3600
	return h, m, s, ms
}

func srtTimestamp(seconds float64) string {
	h, m, s, ms := splitClock(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func vttTimestamp(seconds float64) string {
	h, m, s, ms := splitClock(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
