// Package orchestrator coordinates the full proofread pipeline: the editor
// pass over the raw draft, the optional analysis pass over the edited
// manuscript, and assembly of the result into a document model.
//
// Pipeline failures split into two classes. An editor-pass failure aborts
// the job: there is nothing useful to produce without an edited manuscript.
// Analysis and validation failures degrade: the document is still assembled
// and the problem is reported as a warning.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/valpere/pandulipi/internal"
	"github.com/valpere/pandulipi/internal/ai"
	"github.com/valpere/pandulipi/internal/analyst"
	"github.com/valpere/pandulipi/internal/editor"
	"github.com/valpere/pandulipi/internal/manuscript"
	"github.com/valpere/pandulipi/internal/render"
	"github.com/valpere/pandulipi/internal/validator"
)

// Result holds everything a completed proofread job produced.
type Result struct {
	// EditedManuscript is the marker-annotated text returned by the editor
	// pass, before parsing.
	EditedManuscript string

	// Glossary is present when the request asked for one. A failed analysis
	// pass leaves a single placeholder entry here.
	Glossary []internal.GlossaryEntry

	// Consistency lists potential inconsistencies found by the analysis
	// pass, when requested.
	Consistency []string

	// Warnings collects non-fatal problems: degraded analysis, language
	// drift between draft and edited output.
	Warnings []string
}

// Orchestrator wires the pipeline stages together.
type Orchestrator struct {
	editor  *editor.Editor
	analyst *analyst.Analyst
	val     *validator.Validator
}

// New creates an Orchestrator with all stages backed by svc.
// The validator is optional; pass nil to skip language-drift checking.
func New(svc ai.Service, maxChunkChars int, val *validator.Validator) *Orchestrator {
	return &Orchestrator{
		editor:  editor.New(svc, maxChunkChars),
		analyst: analyst.New(svc),
		val:     val,
	}
}

// Run executes the pipeline over rawText. The editor pass is mandatory and
// its failure is returned as an error; every later stage degrades into
// Result.Warnings instead of failing the job.
func (o *Orchestrator) Run(ctx context.Context, rawText string, req internal.ProofreadRequest) (*Result, error) {
	edited, err := o.editor.Edit(ctx, rawText, req)
	if err != nil {
		return nil, fmt.Errorf("editor pass: %w", err)
	}

	res := &Result{EditedManuscript: edited}

	if o.val != nil {
		if ok, verr := o.val.MatchesSource(rawText, edited); !ok {
			res.Warnings = append(res.Warnings, fmt.Sprintf("language check: %v", verr))
		}
	}

	if req.GenerateGlossary {
		entries, gerr := o.analyst.Glossary(ctx, edited)
		res.Glossary = entries
		if gerr != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("glossary: %v", gerr))
		}
	}

	if req.ConsistencyReport {
		notes, cerr := o.analyst.ConsistencyReport(ctx, edited)
		res.Consistency = notes
		if cerr != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("consistency report: %v", cerr))
		}
	}

	return res, nil
}

// Assemble parses the edited manuscript and builds the final document model,
// including the glossary table and consistency notes when present.
func Assemble(res *Result, style internal.StyleConfig) *render.DocumentModel {
	segs := manuscript.Parse(res.EditedManuscript)
	model := render.Render(segs, style)
	render.AppendGlossary(model, res.Glossary)
	render.AppendConsistencyNotes(model, res.Consistency)
	return model
}
