// Package editor implements the editorial pass: it sends a raw, voice-typed
// manuscript to an AI service together with the author's stylistic
// parameters and receives back a corrected manuscript annotated with
// structural markers ([H1], [H2], [SHLOKA], [TRANSLATION]).
//
// Long manuscripts are split with the chunker and edited chunk by chunk; a
// sliding-window context from the previously edited chunk keeps terminology
// and tone consistent across boundaries.
package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/valpere/pandulipi/internal"
	"github.com/valpere/pandulipi/internal/ai"
	"github.com/valpere/pandulipi/internal/chunker"
)

const (
	// DefaultMaxChunkChars bounds a single editing request. Voice-typed
	// drafts routinely exceed model output limits, so anything longer is
	// chunked at paragraph boundaries.
	DefaultMaxChunkChars = 12000
)

// Editor drives the editorial pass against a single AI service.
type Editor struct {
	svc           ai.Service
	maxChunkChars int
}

// New creates an Editor. If maxChunkChars ≤ 0, DefaultMaxChunkChars is used.
func New(svc ai.Service, maxChunkChars int) *Editor {
	if maxChunkChars <= 0 {
		maxChunkChars = DefaultMaxChunkChars
	}
	return &Editor{svc: svc, maxChunkChars: maxChunkChars}
}

// Edit runs the editorial pass over rawText and returns the marker-annotated
// manuscript. The returned text is already postprocessed by the AI layer;
// Edit never parses it — parsing is the caller's concern.
func (e *Editor) Edit(ctx context.Context, rawText string, req internal.ProofreadRequest) (string, error) {
	chunks := chunker.Chunk(rawText, e.maxChunkChars)

	var edited []string
	prevContext := ""
	for i, chunk := range chunks {
		prompt := buildEditorPrompt(chunk, prevContext, req)
		out, err := e.svc.Complete(ctx, prompt)
		if err != nil {
			return "", fmt.Errorf("editing chunk %d/%d: %w", i+1, len(chunks), err)
		}
		edited = append(edited, out)
		prevContext = chunker.ExtractContext(out, chunker.DefaultContextWords)
	}

	return strings.Join(edited, "\n\n"), nil
}

// EditSnippet performs a targeted edit: the AI applies command to snippet and
// returns only the modified snippet. Used by the interactive-edit operation.
func EditSnippet(ctx context.Context, svc ai.Service, snippet, command string) (string, error) {
	prompt := fmt.Sprintf(`You are an expert editor. A user has provided a snippet of text and a command.
Execute the command precisely. Return ONLY the modified text snippet, with no explanation.

**Command:** %q

**Text to modify:** %q`, command, snippet)

	out, err := svc.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func buildEditorPrompt(text, prevContext string, req internal.ProofreadRequest) string {
	var b strings.Builder

	b.WriteString(`You are an expert multilingual book editor and proofreader with mastery in English, Hindi, and Sanskrit.
Your task is to meticulously edit and format a raw, voice-typed manuscript draft. Adhere STRICTLY to the following instructions.

**Primary Goal:** Preserve the author's original voice and intent while elevating the text to a professional, publication-ready standard.

---
**CONTEXTUAL & STYLISTIC PARAMETERS:**

`)
	fmt.Fprintf(&b, "1.  **Author's Persona:** %s\n", orDefault(req.AuthorPersona, "A thoughtful spiritual author."))
	fmt.Fprintf(&b, "2.  **Book's Core Message:** %s\n", orDefault(req.BookSummary, "Not specified."))
	fmt.Fprintf(&b, "3.  **Language-Specific Rules:** %s\n", orDefault(req.LanguageRules, "Keep each passage in its original language."))

	b.WriteString(`
---
**CORE EDITORIAL TASKS:**

1.  **Proofread for Errors:**
    - Correct all spelling, grammar, and syntax errors.
    - Pay extreme attention to common voice-to-text mistakes like homophones (e.g., "their/there/they're", "right/write/rite"). Use context to determine the correct word.
    - Fix incorrect capitalization. Capitalize the start of sentences and all proper nouns.

2.  **Punctuation and Structure:**
    - Insert correct punctuation (periods, commas, question marks, etc.).
    - Break down long, run-on sentences into clear, concise ones.
    - Structure the text into logical paragraphs. Add paragraph breaks where a new idea or topic is introduced.

3.  **Consistency Check:**
    - Scan the entire text for inconsistencies in names, places, and key terms. If you find a variation (e.g., "Suresh" and "Suraesh"), standardize it to the first usage.

---
**STRUCTURAL MARKUP:**

Mark document structure using EXACTLY these bracket tags and no others:

- Chapter titles:        [H1]title text[/H1]
- Section headings:      [H2]heading text[/H2]
- Sanskrit verses:       [SHLOKA]verse text[/SHLOKA]
- Verse translations:    [TRANSLATION]translation text[/TRANSLATION]

Tags are case-sensitive and must not be nested. Everything outside these tags is ordinary body text.
`)

	if opts := req.Style.Shloka; opts != nil {
		b.WriteString("\nShloka handling:\n")
		if opts.LineBreaks {
			b.WriteString("- Preserve the original line breaks of each verse inside [SHLOKA] tags.\n")
		}
		if opts.AddNumbering {
			b.WriteString("- Number the verses sequentially (1., 2., ...) at the start of each [SHLOKA] block.\n")
		}
		if style := strings.TrimSpace(opts.TranslationStyle); style != "" {
			fmt.Fprintf(&b, "- Render each verse translation in this style: %s\n", style)
		}
	}

	b.WriteString(`
---
**OUTPUT FORMATTING:**

- Your final output MUST be plain text plus the bracket tags above only.
- Do NOT include any markdown (like ##, **, _, etc.), HTML tags, or any other special formatting.
- The output should be the complete, edited manuscript, ready to be placed directly into a document.
`)

	if prevContext != "" {
		fmt.Fprintf(&b, `
---
**PRECEDING CONTEXT (already edited, for continuity only — do NOT repeat it):**

%s
`, prevContext)
	}

	fmt.Fprintf(&b, `
---
**MANUSCRIPT TO PROCESS:**

%s`, text)

	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
