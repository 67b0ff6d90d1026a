package render

import (
	"strings"

	"github.com/valpere/pandulipi/internal"
	"github.com/valpere/pandulipi/internal/manuscript"
	"github.com/valpere/pandulipi/internal/marker"
)

// Render converts a segment sequence into a DocumentModel under the given
// style. Empty or whitespace-only plain segments produce no block; an empty
// sequence yields an empty body.
func Render(segs []manuscript.Segment, style internal.StyleConfig) *DocumentModel {
	m := &DocumentModel{}

	for _, seg := range segs {
		switch seg.Kind {
		case marker.Heading1:
			m.append(headingParagraph(seg.Text, style.Heading1))
		case marker.Heading2:
			m.append(headingParagraph(seg.Text, style.Heading2))
		case marker.Shloka:
			m.append(shlokaParagraph(seg.Text, style.Shloka))
		case marker.Translation:
			m.append(&Paragraph{
				Runs:      []Run{{Text: seg.Text}},
				Alignment: AlignLeft,
			})
		default:
			if strings.TrimSpace(seg.Text) == "" {
				continue
			}
			m.append(&Paragraph{Runs: []Run{{Text: seg.Text}}})
		}
	}

	return m
}

func headingParagraph(text string, hs internal.HeadingStyle) *Paragraph {
	return &Paragraph{
		Runs: []Run{{Text: text, Bold: hs.Bold, SizePt: hs.SizePt}},
	}
}

// shlokaParagraph splits verse content on embedded newlines into italic
// runs. With line_breaks enabled each run after the first carries an
// explicit break; otherwise the runs are laid out back to back. opts may be
// nil, which disables centering, breaks, and numbering alike.
func shlokaParagraph(text string, opts *internal.ShlokaOptions) *Paragraph {
	p := &Paragraph{}
	if opts != nil && opts.CenterAlign {
		p.Alignment = AlignCenter
	}

	lines := strings.Split(text, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		run := Run{Text: line, Italic: true}
		if opts != nil && opts.LineBreaks && len(p.Runs) > 0 {
			run.BreakBefore = true
		}
		p.Runs = append(p.Runs, run)
	}

	// A verse that was all whitespace still renders as one empty paragraph.
	if len(p.Runs) == 0 {
		p.Runs = []Run{{Text: "", Italic: true}}
	}
	return p
}
