// Package marker defines the inline bracket-tag vocabulary emitted by the
// editor pass ([H1], [H2], [SHLOKA], [TRANSLATION]) and its matching rules:
// a pair matches the shortest span from an opening tag to the next occurrence
// of its exact closing tag — case-sensitive, non-nested, no cross-tag close.
// Auxiliary markers ([CITE: …], [ITALIC]…[/ITALIC]) are never rendered; they
// are stripped from leftover plain text.
package marker

import (
	"regexp"
	"strings"
)

// Kind identifies the structural role of a matched span.
type Kind int

const (
	PlainText Kind = iota
	Heading1
	Heading2
	Shloka
	Translation
)

func (k Kind) String() string {
	switch k {
	case Heading1:
		return "heading1"
	case Heading2:
		return "heading2"
	case Shloka:
		return "shloka"
	case Translation:
		return "translation"
	default:
		return "plain"
	}
}

// tagPair binds a kind to its literal opening and closing tags.
type tagPair struct {
	kind  Kind
	open  string
	close string
}

// pairs is the complete wire vocabulary. The tags are bit-exact: matching is
// case-sensitive and no whitespace is tolerated inside a tag.
var pairs = []tagPair{
	{Heading1, "[H1]", "[/H1]"},
	{Heading2, "[H2]", "[/H2]"},
	{Shloka, "[SHLOKA]", "[/SHLOKA]"},
	{Translation, "[TRANSLATION]", "[/TRANSLATION]"},
}

// Match locates one matched tag pair within the source text. Offsets are
// byte positions into the scanned string: [Start, End) covers the whole
// span including both tags, [InnerStart, InnerEnd) the content between them.
type Match struct {
	Kind       Kind
	Start      int
	End        int
	InnerStart int
	InnerEnd   int
}

// Next returns the earliest matched tag pair at or after byte offset from.
// An opening tag with no corresponding closing tag anywhere in the remaining
// text is not a match — it is skipped and later falls through to plain text.
// The second return value is false when no matched pair remains.
func Next(text string, from int) (Match, bool) {
	if from < 0 {
		from = 0
	}
	pos := from
	for pos < len(text) {
		best := Match{Start: -1}
		// Earliest opening tag (of any kind) that also has a close.
		nextOpen := -1
		for _, p := range pairs {
			open := strings.Index(text[pos:], p.open)
			if open == -1 {
				continue
			}
			open += pos
			if nextOpen == -1 || open < nextOpen {
				nextOpen = open
			}
			innerStart := open + len(p.open)
			rel := strings.Index(text[innerStart:], p.close)
			if rel == -1 {
				continue // unmatched open, plain text
			}
			m := Match{
				Kind:       p.kind,
				Start:      open,
				End:        innerStart + rel + len(p.close),
				InnerStart: innerStart,
				InnerEnd:   innerStart + rel,
			}
			if best.Start == -1 || m.Start < best.Start {
				best = m
			}
		}
		if best.Start != -1 {
			return best, true
		}
		if nextOpen == -1 {
			return Match{}, false
		}
		// Every opening tag from here on is unmatched; skip past the first
		// one and keep scanning the remainder.
		pos = nextOpen + 1
	}
	return Match{}, false
}

var (
	// [CITE: …] citation markers left over from shloka content.
	reCite = regexp.MustCompile(`\[CITE:[^\]]*\]`)

	// [ITALIC]…[/ITALIC] emphasis markers an upstream pass may emit.
	// Only the tags are removed; the wrapped text stays.
	reItalic = regexp.MustCompile(`\[/?ITALIC\]`)
)

// StripAux removes the strip-only auxiliary markers from leftover plain
// text. All other bracket text is preserved verbatim.
func StripAux(s string) string {
	s = reCite.ReplaceAllString(s, "")
	s = reItalic.ReplaceAllString(s, "")
	return s
}
