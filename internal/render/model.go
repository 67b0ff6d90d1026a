// Package render turns a parsed segment sequence plus a style configuration
// into a DocumentModel: the structured, style-bearing representation handed
// to the docx writer. Rendering is a pure function — identical inputs always
// produce an identical model, and no segment sequence makes it fail.
package render

// Alignment is a paragraph's horizontal alignment.
type Alignment int

const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	default:
		return "default"
	}
}

// Run is a contiguous span of identically styled text within a paragraph.
// SizePt of 0 inherits the document font size. BreakBefore inserts an
// explicit line break before the run.
type Run struct {
	Text        string
	Bold        bool
	Italic      bool
	SizePt      float64
	BreakBefore bool
}

// Block is one element of the document body. The concrete types are
// Paragraph, Table, PageBreak, and SectionHeading.
type Block interface {
	block()
}

// Paragraph is a sequence of runs sharing one alignment.
type Paragraph struct {
	Runs      []Run
	Alignment Alignment
}

// Table is a header row plus data rows of plain string cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// PageBreak forces a new page before whatever follows.
type PageBreak struct{}

// SectionHeading is a titled divider such as the glossary header.
type SectionHeading struct {
	Level int
	Text  string
}

func (*Paragraph) block()      {}
func (*Table) block()          {}
func (*PageBreak) block()      {}
func (*SectionHeading) block() {}

// DocumentModel is the ordered block sequence for one output document.
// Document-wide settings (font, spacing, margins) live in the StyleConfig
// passed to the writer, not here.
type DocumentModel struct {
	Blocks []Block
}

func (m *DocumentModel) append(b Block) {
	m.Blocks = append(m.Blocks, b)
}
