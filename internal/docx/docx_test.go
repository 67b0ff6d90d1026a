package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/valpere/pandulipi/internal"
	"github.com/valpere/pandulipi/internal/render"
)

func TestReadParagraphs_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{name: "empty bytes", input: nil},
		{name: "not a zip", input: []byte("plain text, not a docx")},
		{name: "zip without document", input: emptyZip(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadParagraphs(tt.input)
			if err == nil {
				t.Fatal("expected an error")
			}
			var fe *internal.FormatError
			if !errors.As(err, &fe) {
				t.Errorf("error is %T, want *internal.FormatError", err)
			}
		})
	}
}

// emptyZip is a valid zip archive containing no word/document.xml.
func emptyZip(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("unrelated.txt")
	if err != nil {
		t.Fatalf("failed to build fixture: %v", err)
	}
	if _, err := f.Write([]byte("nothing")); err != nil {
		t.Fatalf("failed to build fixture: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to build fixture: %v", err)
	}
	return buf.Bytes()
}

func TestRoundTrip_Paragraphs(t *testing.T) {
	m := &render.DocumentModel{}
	m.Blocks = append(m.Blocks,
		&render.Paragraph{Runs: []render.Run{{Text: "Hello world."}}},
		&render.Paragraph{Runs: []render.Run{{Text: "Chapter One", Bold: true, SizePt: 18}}},
		&render.Paragraph{
			Runs:      []render.Run{{Text: "line one", Italic: true}, {Text: "line two", Italic: true, BreakBefore: true}},
			Alignment: render.AlignCenter,
		},
	)

	data, err := Write(m, internal.DefaultStyle())
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	paras, err := ReadParagraphs(data)
	if err != nil {
		t.Fatalf("ReadParagraphs failed: %v", err)
	}

	if len(paras) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d: %q", len(paras), paras)
	}
	if paras[0] != "Hello world." {
		t.Errorf("paragraph 0 = %q", paras[0])
	}
	if paras[1] != "Chapter One" {
		t.Errorf("paragraph 1 = %q", paras[1])
	}
	if paras[2] != "line oneline two" {
		t.Errorf("paragraph 2 = %q", paras[2])
	}
}

func TestRoundTrip_GlossaryDocument(t *testing.T) {
	m := &render.DocumentModel{}
	m.Blocks = append(m.Blocks, &render.Paragraph{Runs: []render.Run{{Text: "body"}}})
	render.AppendGlossary(m, []internal.GlossaryEntry{
		{Term: "धर्म", Transliteration: "dharma", Translation: "duty"},
	})

	data, err := Write(m, internal.DefaultStyle())
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// The table lives outside body paragraphs; the page-break paragraph and
	// the glossary heading are still visible as paragraphs.
	paras, err := ReadParagraphs(data)
	if err != nil {
		t.Fatalf("ReadParagraphs failed: %v", err)
	}

	joined := strings.Join(paras, "\n")
	if !strings.Contains(joined, "body") {
		t.Errorf("body text missing from %q", joined)
	}
	if !strings.Contains(joined, "Glossary") {
		t.Errorf("glossary heading missing from %q", joined)
	}
}

func TestWrite_EscapesMarkup(t *testing.T) {
	m := &render.DocumentModel{}
	m.Blocks = append(m.Blocks, &render.Paragraph{
		Runs: []render.Run{{Text: `a < b & "c" > d`}},
	})

	data, err := Write(m, internal.DefaultStyle())
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	paras, err := ReadParagraphs(data)
	if err != nil {
		t.Fatalf("ReadParagraphs failed: %v", err)
	}
	if paras[0] != `a < b & "c" > d` {
		t.Errorf("round-tripped text = %q", paras[0])
	}
}

func TestLineSpacing(t *testing.T) {
	tests := []struct {
		name     string
		spacing  float64
		fontPt   float64
		wantLine int
		wantRule string
	}{
		{name: "single", spacing: 1.0, fontPt: 12, wantLine: 240, wantRule: "auto"},
		{name: "one and a half", spacing: 1.5, fontPt: 12, wantLine: 360, wantRule: "auto"},
		{name: "double", spacing: 2.0, fontPt: 12, wantLine: 480, wantRule: "auto"},
		{name: "custom becomes fixed points", spacing: 1.2, fontPt: 12, wantLine: 288, wantRule: "exact"},
		{name: "zero treated as single", spacing: 0, fontPt: 12, wantLine: 240, wantRule: "auto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := internal.DefaultStyle()
			style.LineSpacing = tt.spacing
			style.FontSizePt = tt.fontPt

			line, rule := lineSpacing(style)
			if line != tt.wantLine || rule != tt.wantRule {
				t.Errorf("lineSpacing = (%d, %q), want (%d, %q)", line, rule, tt.wantLine, tt.wantRule)
			}
		})
	}
}

func TestTwips(t *testing.T) {
	if got := twips(1.0); got != 1440 {
		t.Errorf("twips(1.0) = %d, want 1440", got)
	}
	if got := twips(0.5); got != 720 {
		t.Errorf("twips(0.5) = %d, want 720", got)
	}
}
