// Package manuscript splits an edited, marker-tagged manuscript string into
// an ordered sequence of typed content segments. The parse is total: any
// input — empty, unterminated tags, nested duplicate tags — produces a valid
// segment sequence. The AI output this package consumes is untrusted, so
// malformed markup degrades to plain text instead of failing.
package manuscript

import (
	"strings"

	"github.com/valpere/pandulipi/internal/marker"
)

// Segment is one typed span of manuscript content. Text is the inner content
// of the matched tag pair (or the leftover plain text), trimmed. Start and
// End are byte offsets of the span in the source string.
type Segment struct {
	Kind  marker.Kind
	Text  string
	Start int
	End   int
}

// Parse scans text left to right and returns its typed segments in source
// order. Everything outside matched tag pairs becomes PlainText with stray
// auxiliary markers stripped; whitespace-only gaps produce no segment.
func Parse(text string) []Segment {
	var segs []Segment
	pos := 0

	for {
		m, ok := marker.Next(text, pos)
		if !ok {
			segs = appendPlain(segs, text, pos, len(text))
			return segs
		}

		segs = appendPlain(segs, text, pos, m.Start)
		segs = append(segs, Segment{
			Kind:  m.Kind,
			Text:  strings.TrimSpace(text[m.InnerStart:m.InnerEnd]),
			Start: m.Start,
			End:   m.End,
		})
		pos = m.End
	}
}

// appendPlain adds the [start, end) gap as a PlainText segment when it has
// visible content after stripping auxiliary markers and trimming.
func appendPlain(segs []Segment, text string, start, end int) []Segment {
	if start >= end {
		return segs
	}
	content := strings.TrimSpace(marker.StripAux(text[start:end]))
	if content == "" {
		return segs
	}
	return append(segs, Segment{
		Kind:  marker.PlainText,
		Text:  content,
		Start: start,
		End:   end,
	})
}
