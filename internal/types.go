package internal

import (
	"fmt"
	"time"
)

// ShlokaOptions controls how verse blocks are marked up by the editor pass
// and laid out by the renderer.
type ShlokaOptions struct {
	LineBreaks       bool   `mapstructure:"line_breaks" json:"line_breaks"`
	AddNumbering     bool   `mapstructure:"add_numbering" json:"add_numbering"`
	TranslationStyle string `mapstructure:"translation_style" json:"translation_style"`
	CenterAlign      bool   `mapstructure:"center_align" json:"center_align"`
}

// HeadingStyle is the run styling applied to a heading level.
type HeadingStyle struct {
	SizePt float64 `mapstructure:"size" json:"size"`
	Bold   bool    `mapstructure:"bold" json:"bold"`
}

// StyleConfig carries the document-wide formatting parameters for one render
// call. It is read-only once supplied.
type StyleConfig struct {
	FontFamily  string  `mapstructure:"font_family" json:"font_family"`
	FontSizePt  float64 `mapstructure:"font_size" json:"font_size"`
	LineSpacing float64 `mapstructure:"line_spacing" json:"line_spacing"`

	// Margins in inches, matching the upload form fields.
	MarginTopIn    float64 `mapstructure:"margin_top" json:"margin_top"`
	MarginBottomIn float64 `mapstructure:"margin_bottom" json:"margin_bottom"`
	MarginLeftIn   float64 `mapstructure:"margin_left" json:"margin_left"`
	MarginRightIn  float64 `mapstructure:"margin_right" json:"margin_right"`

	Heading1 HeadingStyle   `mapstructure:"heading1" json:"heading1"`
	Heading2 HeadingStyle   `mapstructure:"heading2" json:"heading2"`
	Shloka   *ShlokaOptions `mapstructure:"shloka" json:"shloka,omitempty"`
}

// DefaultStyle returns the style applied when the caller supplies nothing,
// mirroring the upload form defaults.
func DefaultStyle() StyleConfig {
	return StyleConfig{
		FontFamily:     "Times New Roman",
		FontSizePt:     12,
		LineSpacing:    1.5,
		MarginTopIn:    1.0,
		MarginBottomIn: 1.0,
		MarginLeftIn:   1.0,
		MarginRightIn:  1.0,
		Heading1:       HeadingStyle{SizePt: 18, Bold: true},
		Heading2:       HeadingStyle{SizePt: 14, Bold: true},
	}
}

// ProofreadRequest bundles the contextual parameters supplied alongside a
// manuscript upload. The persona, summary, and language rules feed the
// editor-pass prompt verbatim.
type ProofreadRequest struct {
	AuthorPersona     string      `json:"author_persona"`
	BookSummary       string      `json:"book_summary"`
	LanguageRules     string      `json:"language_rules"`
	GenerateGlossary  bool        `json:"generate_glossary"`
	ConsistencyReport bool        `json:"consistency_report"`
	Style             StyleConfig `json:"style"`
}

// GlossaryEntry is one row of the glossary produced by the analyst pass.
// Term is never empty for entries accepted by the strict decoder; Context
// may be empty (wire value null).
type GlossaryEntry struct {
	Term            string `json:"term"`
	Transliteration string `json:"transliteration"`
	Translation     string `json:"translation"`
	Context         string `json:"context"`
}

// ProofreadJob is the persisted record of one pipeline run.
type ProofreadJob struct {
	ID            string
	Filename      string
	AuthorPersona string
	BookSummary   string
	LanguageRules string
	RawChars      int
	EditedChars   int
	ServiceUsed   string
	Status        string
	Error         string
	CreatedAt     time.Time
}

// ServiceError reports a failed AI service call (transport, auth, quota, or
// undecodable reply). It is fatal for the owning pipeline stage only.
type ServiceError struct {
	Service string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Service == "" {
		return fmt.Sprintf("ai service: %v", e.Err)
	}
	return fmt.Sprintf("ai service %s: %v", e.Service, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// FormatError reports an unreadable input document. It is fatal for the
// whole request; no partial result is produced.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid document: %s", e.Reason)
	}
	return fmt.Sprintf("invalid document: %s: %v", e.Reason, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
