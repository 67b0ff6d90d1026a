// Package validator checks that an edited manuscript stays in the language
// of the source draft. The editor pass must correct, not translate; a large
// language shift between input and output indicates the model went off-task.
package validator

import (
	"fmt"
	"strings"

	"github.com/valpere/pandulipi/internal/detector"
)

// minValidationLength is the minimum rune count required to attempt language
// detection. Shorter texts produce unreliable results and are accepted
// without validation.
const minValidationLength = 20

// Validator checks edited output against its source draft.
// The underlying language detector is expensive to build; reuse the instance.
type Validator struct {
	det *detector.Detector
}

// New creates a Validator backed by the lingua-go language detector.
func New() *Validator {
	return &Validator{det: detector.New()}
}

// MatchesSource returns true when edited appears to be written in the same
// language as source.
//
// Either text being too short for reliable detection, or either language
// being ambiguous, passes without error. When the two detected languages
// differ the returned error names both.
func (v *Validator) MatchesSource(source, edited string) (bool, error) {
	src := strings.TrimSpace(source)
	out := strings.TrimSpace(edited)
	if out == "" {
		return false, fmt.Errorf("edited text is empty")
	}
	if len([]rune(src)) < minValidationLength || len([]rune(out)) < minValidationLength {
		return true, nil
	}

	srcLang, ok := v.det.DetectISO(src)
	if !ok {
		return true, nil
	}
	outLang, ok := v.det.DetectISO(out)
	if !ok {
		return true, nil
	}

	if !strings.EqualFold(srcLang, outLang) {
		return false, fmt.Errorf("source language %s but edited text detected as %s", srcLang, outLang)
	}
	return true, nil
}
