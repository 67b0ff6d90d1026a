// Package detector identifies the languages present in a manuscript.
//
// Two paths are available: an AI-backed detector that can name every
// language in a mixed-language draft (English body, Sanskrit verses, Hindi
// commentary), and a statistical detector built on lingua-go that serves as
// an offline fallback and as the basis for single-language checks.
package detector

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	lingua "github.com/pemistahl/lingua-go"

	"github.com/valpere/pandulipi/internal/ai"
)

// sampleRunes bounds the text sent to the AI detector. Language mix is
// evident well before this point and full manuscripts waste tokens.
const sampleRunes = 2000

// Detector wraps the statistical lingua-go detector.
// It is expensive to build; reuse the instance.
type Detector struct {
	detector lingua.LanguageDetector
}

// New creates a Detector covering all lingua-supported languages.
func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()

	return &Detector{detector: detector}
}

// Detect returns the most likely language of text.
func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if text == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// DetectISO returns the ISO 639-1 code of the most likely language of text.
func (d *Detector) DetectISO(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return lang.IsoCode639_1().String(), true
}

// DetectLanguages asks the AI service which languages appear in text and
// returns their English names. Only a leading sample of the text is sent.
// When the AI request fails or returns malformed output, it falls back to
// the statistical detector and returns at most one language.
func (d *Detector) DetectLanguages(ctx context.Context, svc ai.Service, text string) ([]string, error) {
	sample := text
	if runes := []rune(text); len(runes) > sampleRunes {
		sample = string(runes[:sampleRunes])
	}

	prompt := fmt.Sprintf(`Identify every natural language present in the following text sample.
Respond ONLY with a JSON array of English language names, e.g. ["English", "Sanskrit", "Hindi"].
Do not include markdown fences or any text outside the JSON array.

Text sample:
---
%s
---`, sample)

	raw, err := svc.Complete(ctx, prompt)
	if err != nil {
		return d.fallback(text), err
	}

	var langs []string
	if err := json.Unmarshal([]byte(raw), &langs); err != nil {
		return d.fallback(text), fmt.Errorf("malformed language list: %w", err)
	}

	var out []string
	for _, l := range langs {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return d.fallback(text), fmt.Errorf("AI returned no languages")
	}
	return out, nil
}

func (d *Detector) fallback(text string) []string {
	lang, ok := d.Detect(text)
	if !ok {
		return nil
	}
	return []string{lang.String()}
}
