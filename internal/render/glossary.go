package render

import "github.com/valpere/pandulipi/internal"

// glossaryHeader is the fixed four-column header of the glossary table.
var glossaryHeader = []string{"Term", "Transliteration", "Translation", "Context/Citation"}

// AppendGlossary appends a page break, a "Glossary" section heading, and a
// four-column table with one data row per entry, in analyst-pass order.
// Entries with an empty context render an empty cell. An empty entry list
// appends nothing.
func AppendGlossary(m *DocumentModel, entries []internal.GlossaryEntry) {
	if len(entries) == 0 {
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Term, e.Transliteration, e.Translation, e.Context})
	}

	m.append(&PageBreak{})
	m.append(&SectionHeading{Level: 1, Text: "Glossary"})
	m.append(&Table{Header: glossaryHeader, Rows: rows})
}

// AppendConsistencyNotes appends a "Consistency Notes" section listing the
// analyst's findings, one paragraph per note. An empty list appends nothing.
func AppendConsistencyNotes(m *DocumentModel, notes []string) {
	if len(notes) == 0 {
		return
	}

	m.append(&SectionHeading{Level: 1, Text: "Consistency Notes"})
	for _, note := range notes {
		m.append(&Paragraph{Runs: []Run{{Text: note}}})
	}
}
