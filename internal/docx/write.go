package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/valpere/pandulipi/internal"
	"github.com/valpere/pandulipi/internal/render"
)

// WordprocessingML length units: margins and table widths are twentieths of
// a point (twips, 1440 per inch), font sizes half-points, and the Normal
// style's line value 240ths of a line at lineRule="auto".
const (
	twipsPerInch    = 1440
	singleLineUnits = 240
)

const nsMain = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Write-side XML types carry the w: prefix explicitly; the prefix is
// declared once on the root element.

type wDocument struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	Body    wBody    `xml:"w:body"`
}

type wBody struct {
	Content []any
	SectPr  wSectPr `xml:"w:sectPr"`
}

type wSectPr struct {
	PgSz  wPgSz  `xml:"w:pgSz"`
	PgMar wPgMar `xml:"w:pgMar"`
}

type wPgSz struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type wPgMar struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

type wP struct {
	XMLName xml.Name `xml:"w:p"`
	PPr     *wPPr    `xml:"w:pPr,omitempty"`
	Runs    []wR
}

type wPPr struct {
	Jc *wVal `xml:"w:jc,omitempty"`
}

type wVal struct {
	Val string `xml:"w:val,attr"`
}

type wR struct {
	XMLName xml.Name `xml:"w:r"`
	RPr     *wRPr    `xml:"w:rPr,omitempty"`
	Br      *wBr     `xml:"w:br,omitempty"`
	Text    *wT      `xml:"w:t,omitempty"`
}

type wRPr struct {
	Bold   *wEmpty `xml:"w:b,omitempty"`
	Italic *wEmpty `xml:"w:i,omitempty"`
	Sz     *wVal   `xml:"w:sz,omitempty"`
	SzCs   *wVal   `xml:"w:szCs,omitempty"`
}

type wEmpty struct{}

type wBr struct {
	Type string `xml:"w:type,attr,omitempty"`
}

type wT struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type wTbl struct {
	XMLName xml.Name `xml:"w:tbl"`
	TblPr   wTblPr   `xml:"w:tblPr"`
	Grid    wTblGrid `xml:"w:tblGrid"`
	Rows    []wTr
}

type wTblPr struct {
	TblW    wTblW       `xml:"w:tblW"`
	Borders wTblBorders `xml:"w:tblBorders"`
}

type wTblW struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type wTblBorders struct {
	Top     wBorder `xml:"w:top"`
	Left    wBorder `xml:"w:left"`
	Bottom  wBorder `xml:"w:bottom"`
	Right   wBorder `xml:"w:right"`
	InsideH wBorder `xml:"w:insideH"`
	InsideV wBorder `xml:"w:insideV"`
}

type wBorder struct {
	Val   string `xml:"w:val,attr"`
	Sz    int    `xml:"w:sz,attr"`
	Space int    `xml:"w:space,attr"`
	Color string `xml:"w:color,attr"`
}

type wTblGrid struct {
	Cols []wGridCol `xml:"w:gridCol"`
}

type wGridCol struct {
	W int `xml:"w:w,attr"`
}

type wTr struct {
	XMLName xml.Name `xml:"w:tr"`
	Cells   []wTc
}

type wTc struct {
	XMLName    xml.Name `xml:"w:tc"`
	Paragraphs []wP
}

// Write serializes the model under the given style into .docx bytes.
func Write(m *render.DocumentModel, style internal.StyleConfig) ([]byte, error) {
	doc := wDocument{
		XmlnsW: nsMain,
		Body: wBody{
			Content: bodyContent(m, style),
			SectPr: wSectPr{
				PgSz: wPgSz{W: 12240, H: 15840},
				PgMar: wPgMar{
					Top:    twips(style.MarginTopIn),
					Right:  twips(style.MarginRightIn),
					Bottom: twips(style.MarginBottomIn),
					Left:   twips(style.MarginLeftIn),
					Header: 720,
					Footer: 720,
				},
			},
		},
	}

	docXML, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document body: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/styles.xml", stylesXML(style)},
		{"word/document.xml", append([]byte(xml.Header), docXML...)},
	}

	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", part.name, err)
		}
		if _, err := f.Write(part.data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize package: %w", err)
	}
	return buf.Bytes(), nil
}

func bodyContent(m *render.DocumentModel, style internal.StyleConfig) []any {
	var content []any
	for _, b := range m.Blocks {
		switch blk := b.(type) {
		case *render.Paragraph:
			content = append(content, paragraph(blk))
		case *render.SectionHeading:
			content = append(content, sectionHeading(blk, style))
		case *render.PageBreak:
			content = append(content, wP{Runs: []wR{{Br: &wBr{Type: "page"}}}})
		case *render.Table:
			content = append(content, table(blk))
		}
	}
	return content
}

func paragraph(p *render.Paragraph) wP {
	out := wP{}
	if jc := jcVal(p.Alignment); jc != "" {
		out.PPr = &wPPr{Jc: &wVal{Val: jc}}
	}
	for _, r := range p.Runs {
		if r.BreakBefore {
			out.Runs = append(out.Runs, wR{Br: &wBr{}})
		}
		out.Runs = append(out.Runs, run(r))
	}
	return out
}

func run(r render.Run) wR {
	out := wR{Text: &wT{Space: "preserve", Value: r.Text}}
	rpr := &wRPr{}
	styled := false
	if r.Bold {
		rpr.Bold = &wEmpty{}
		styled = true
	}
	if r.Italic {
		rpr.Italic = &wEmpty{}
		styled = true
	}
	if r.SizePt > 0 {
		half := fmt.Sprintf("%d", int(r.SizePt*2))
		rpr.Sz = &wVal{Val: half}
		rpr.SzCs = &wVal{Val: half}
		styled = true
	}
	if styled {
		out.RPr = rpr
	}
	return out
}

func sectionHeading(h *render.SectionHeading, style internal.StyleConfig) wP {
	hs := style.Heading1
	if h.Level >= 2 {
		hs = style.Heading2
	}
	return paragraph(&render.Paragraph{
		Runs: []render.Run{{Text: h.Text, Bold: hs.Bold, SizePt: hs.SizePt}},
	})
}

func table(t *render.Table) wTbl {
	cols := len(t.Header)
	if cols == 0 {
		for _, row := range t.Rows {
			if len(row) > cols {
				cols = len(row)
			}
		}
	}
	// Content width of a letter page with one-inch margins.
	const tableWidth = 9360
	colWidth := tableWidth
	if cols > 0 {
		colWidth = tableWidth / cols
	}

	border := wBorder{Val: "single", Sz: 4, Space: 0, Color: "auto"}
	out := wTbl{
		TblPr: wTblPr{
			TblW: wTblW{W: tableWidth, Type: "dxa"},
			Borders: wTblBorders{
				Top: border, Left: border, Bottom: border, Right: border,
				InsideH: border, InsideV: border,
			},
		},
	}
	for i := 0; i < cols; i++ {
		out.Grid.Cols = append(out.Grid.Cols, wGridCol{W: colWidth})
	}

	if len(t.Header) > 0 {
		out.Rows = append(out.Rows, tableRow(t.Header, cols, true))
	}
	for _, row := range t.Rows {
		out.Rows = append(out.Rows, tableRow(row, cols, false))
	}
	return out
}

func tableRow(cells []string, cols int, bold bool) wTr {
	row := wTr{}
	for i := 0; i < cols; i++ {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		row.Cells = append(row.Cells, wTc{
			Paragraphs: []wP{paragraph(&render.Paragraph{
				Runs: []render.Run{{Text: text, Bold: bold}},
			})},
		})
	}
	return row
}

func jcVal(a render.Alignment) string {
	switch a {
	case render.AlignLeft:
		return "left"
	case render.AlignCenter:
		return "center"
	default:
		return ""
	}
}

func twips(inches float64) int {
	return int(inches * twipsPerInch)
}

// lineSpacing maps the request's spacing ratio onto the Normal style's
// spacing element. The three standard ratios use proportional spacing; any
// other value becomes a fixed line height of ratio × font size points, the
// same rule the upload form documents.
func lineSpacing(style internal.StyleConfig) (line int, rule string) {
	switch style.LineSpacing {
	case 0, 1.0:
		return singleLineUnits, "auto"
	case 1.5:
		return singleLineUnits * 3 / 2, "auto"
	case 2.0:
		return singleLineUnits * 2, "auto"
	default:
		return int(style.FontSizePt * style.LineSpacing * 20), "exact"
	}
}

func stylesXML(style internal.StyleConfig) []byte {
	line, rule := lineSpacing(style)
	half := int(style.FontSizePt * 2)

	var font bytes.Buffer
	xml.EscapeText(&font, []byte(style.FontFamily))

	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="%[1]s">
  <w:docDefaults>
    <w:rPrDefault>
      <w:rPr>
        <w:rFonts w:ascii="%[2]s" w:hAnsi="%[2]s" w:cs="%[2]s"/>
        <w:sz w:val="%[3]d"/>
        <w:szCs w:val="%[3]d"/>
      </w:rPr>
    </w:rPrDefault>
    <w:pPrDefault>
      <w:pPr>
        <w:spacing w:line="%[4]d" w:lineRule="%[5]s"/>
      </w:pPr>
    </w:pPrDefault>
  </w:docDefaults>
  <w:style w:type="paragraph" w:default="1" w:styleId="Normal">
    <w:name w:val="Normal"/>
  </w:style>
</w:styles>
`, nsMain, font.String(), half, line, rule))
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
  <Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>
`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>
`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>
`
