// Package docx reads paragraph text out of .docx packages and serializes a
// rendered DocumentModel back into one. Only the parts of WordprocessingML
// this pipeline needs are modeled: body paragraphs with styled runs, line
// and page breaks, one table shape, section margins, and a Normal style
// carrying the document-wide font and line spacing.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/valpere/pandulipi/internal"
)

// Read-side XML types match by local name, so they decode documents written
// by any producer regardless of namespace prefix.

type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    bodyXML  `xml:"body"`
}

type bodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

type paragraphXML struct {
	Runs       []runXML       `xml:"r"`
	Hyperlinks []hyperlinkXML `xml:"hyperlink"`
}

type hyperlinkXML struct {
	Runs []runXML `xml:"r"`
}

type runXML struct {
	Text []textXML `xml:"t"`
}

type textXML struct {
	Value string `xml:",chardata"`
}

// ReadParagraphs extracts the visible text of each body paragraph, in
// document order. It returns a FormatError when data is not a readable
// .docx package.
func ReadParagraphs(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &internal.FormatError{Reason: "not a .docx package", Err: err}
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, &internal.FormatError{Reason: "word/document.xml missing"}
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, &internal.FormatError{Reason: "cannot open word/document.xml", Err: err}
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, &internal.FormatError{Reason: "cannot read word/document.xml", Err: err}
	}

	var doc documentXML
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, &internal.FormatError{Reason: "malformed word/document.xml", Err: err}
	}

	paras := make([]string, 0, len(doc.Body.Paragraphs))
	for _, p := range doc.Body.Paragraphs {
		var sb strings.Builder
		for _, r := range p.Runs {
			for _, t := range r.Text {
				sb.WriteString(t.Value)
			}
		}
		for _, h := range p.Hyperlinks {
			for _, r := range h.Runs {
				for _, t := range r.Text {
					sb.WriteString(t.Value)
				}
			}
		}
		paras = append(paras, sb.String())
	}
	return paras, nil
}

// ReadText joins all paragraphs with newlines, the shape the editor pass
// consumes.
func ReadText(data []byte) (string, error) {
	paras, err := ReadParagraphs(data)
	if err != nil {
		return "", err
	}
	return strings.Join(paras, "\n"), nil
}
