// Package analyst implements the analysis pass: it asks an AI service for a
// glossary of key terms found in an edited manuscript and for a report of
// potential inconsistencies. Both requests expect strict JSON and degrade to
// placeholder values when the model fails or returns malformed output, so a
// failed analysis never aborts document assembly.
package analyst

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/valpere/pandulipi/internal"
	"github.com/valpere/pandulipi/internal/ai"
)

// failedReportNote is appended to the consistency report when the analysis
// request fails for any reason.
const failedReportNote = "Failed to generate report."

// Analyst drives the analysis pass against a single AI service.
type Analyst struct {
	svc ai.Service
}

// New creates an Analyst backed by svc.
func New(svc ai.Service) *Analyst {
	return &Analyst{svc: svc}
}

// Glossary extracts key terms from manuscript. On failure it returns a
// single placeholder entry describing the problem together with the
// underlying error; the placeholder keeps the rendered document complete.
func (a *Analyst) Glossary(ctx context.Context, manuscript string) ([]internal.GlossaryEntry, error) {
	raw, err := a.svc.Complete(ctx, buildGlossaryPrompt(manuscript))
	if err != nil {
		return errorGlossary(err), err
	}
	entries, err := parseGlossary(raw)
	if err != nil {
		return errorGlossary(err), err
	}
	return entries, nil
}

// ConsistencyReport asks the AI for potential inconsistencies in names,
// dates, and facts. On failure it returns a single placeholder note together
// with the underlying error.
func (a *Analyst) ConsistencyReport(ctx context.Context, manuscript string) ([]string, error) {
	raw, err := a.svc.Complete(ctx, buildConsistencyPrompt(manuscript))
	if err != nil {
		return []string{failedReportNote}, err
	}
	var notes []string
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		return []string{failedReportNote}, fmt.Errorf("malformed consistency report: %w", err)
	}
	return notes, nil
}

func errorGlossary(err error) []internal.GlossaryEntry {
	return []internal.GlossaryEntry{{
		Term:        "Error",
		Translation: fmt.Sprintf("Glossary generation failed: %v", err),
	}}
}

// glossaryKeys is the exact key set every glossary object must carry.
var glossaryKeys = []string{"term", "transliteration", "translation", "context"}

// parseGlossary decodes the glossary wire format: a JSON array of objects
// with exactly the keys term, transliteration, translation, and context.
// context may be null; the other values must be strings and term must be
// non-empty.
func parseGlossary(raw string) ([]internal.GlossaryEntry, error) {
	var objs []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &objs); err != nil {
		return nil, fmt.Errorf("malformed glossary: %w", err)
	}

	entries := make([]internal.GlossaryEntry, 0, len(objs))
	for i, obj := range objs {
		if len(obj) != len(glossaryKeys) {
			return nil, fmt.Errorf("glossary entry %d: expected %d keys, got %d", i, len(glossaryKeys), len(obj))
		}
		for _, key := range glossaryKeys {
			if _, ok := obj[key]; !ok {
				return nil, fmt.Errorf("glossary entry %d: missing key %q", i, key)
			}
		}

		var e internal.GlossaryEntry
		if err := decodeString(obj["term"], &e.Term); err != nil {
			return nil, fmt.Errorf("glossary entry %d: term: %w", i, err)
		}
		if strings.TrimSpace(e.Term) == "" {
			return nil, fmt.Errorf("glossary entry %d: empty term", i)
		}
		if err := decodeString(obj["transliteration"], &e.Transliteration); err != nil {
			return nil, fmt.Errorf("glossary entry %d: transliteration: %w", i, err)
		}
		if err := decodeString(obj["translation"], &e.Translation); err != nil {
			return nil, fmt.Errorf("glossary entry %d: translation: %w", i, err)
		}
		// context is string-or-null; null maps to the empty string.
		if string(obj["context"]) != "null" {
			if err := decodeString(obj["context"], &e.Context); err != nil {
				return nil, fmt.Errorf("glossary entry %d: context: %w", i, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func decodeString(raw json.RawMessage, dst *string) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("expected string, got %s", string(raw))
	}
	return nil
}

func buildGlossaryPrompt(manuscript string) string {
	var sb strings.Builder
	sb.WriteString(`You are a linguistic analyst. Analyze the following manuscript and extract a glossary of key terms: non-English words, philosophical concepts, and recurring proper nouns.

Respond ONLY with a JSON array. Each element must be an object with exactly these four keys:
{
  "term": "the term as it appears in the manuscript",
  "transliteration": "roman transliteration, or empty string if already roman",
  "translation": "brief English meaning",
  "context": "citation or usage note, or null"
}

Do not include markdown fences or any text outside the JSON array. If there are no notable terms, return [].

**Manuscript:**
---
`)
	sb.WriteString(manuscript)
	sb.WriteString("\n---\n")
	return sb.String()
}

func buildConsistencyPrompt(manuscript string) string {
	var sb strings.Builder
	sb.WriteString(`You are a linguistic analyst. Scan the following manuscript for potential inconsistencies in names, dates, places, and facts (e.g. "Suresh" vs "Suraesh", conflicting dates).

Respond ONLY with a JSON array of strings, one string per issue found. Return [] if there are no issues. Do not include markdown fences or any text outside the JSON array.

**Manuscript:**
---
`)
	sb.WriteString(manuscript)
	sb.WriteString("\n---\n")
	return sb.String()
}
