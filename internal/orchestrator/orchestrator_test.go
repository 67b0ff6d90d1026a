package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/valpere/pandulipi/internal"
	"github.com/valpere/pandulipi/internal/render"
)

// scriptedService returns responses in call order: first the editor pass,
// then the analysis passes.
type scriptedService struct {
	responses []string
	errs      []error
	calls     int
}

func (s *scriptedService) Name() string { return "scripted" }

func (s *scriptedService) Complete(_ context.Context, _ string) (string, error) {
	i := s.calls
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	resp := ""
	if i < len(s.responses) {
		resp = s.responses[i]
	}
	return resp, err
}

func TestRun_EditorOnly(t *testing.T) {
	svc := &scriptedService{responses: []string{"[H1]Chapter One[/H1]\nEdited body."}}
	o := New(svc, 0, nil)

	res, err := o.Run(context.Background(), "chapter one body", internal.ProofreadRequest{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.EditedManuscript != "[H1]Chapter One[/H1]\nEdited body." {
		t.Errorf("edited = %q", res.EditedManuscript)
	}
	if res.Glossary != nil || res.Consistency != nil {
		t.Error("analysis passes should not run unless requested")
	}
	if svc.calls != 1 {
		t.Errorf("expected 1 request, got %d", svc.calls)
	}
}

func TestRun_EditorFailureAborts(t *testing.T) {
	svcErr := &internal.ServiceError{Service: "scripted", Err: errors.New("down")}
	svc := &scriptedService{errs: []error{svcErr}}
	o := New(svc, 0, nil)

	_, err := o.Run(context.Background(), "text", internal.ProofreadRequest{GenerateGlossary: true})
	if err == nil {
		t.Fatal("expected error")
	}
	var target *internal.ServiceError
	if !errors.As(err, &target) {
		t.Errorf("expected ServiceError, got %v", err)
	}
	if svc.calls != 1 {
		t.Errorf("analysis should not run after editor failure; got %d calls", svc.calls)
	}
}

func TestRun_WithAnalysis(t *testing.T) {
	svc := &scriptedService{responses: []string{
		"Edited text.",
		`[{"term": "dharma", "transliteration": "dharma", "translation": "duty", "context": null}]`,
		`["One issue."]`,
	}}
	o := New(svc, 0, nil)

	res, err := o.Run(context.Background(), "text", internal.ProofreadRequest{
		GenerateGlossary:  true,
		ConsistencyReport: true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Glossary) != 1 || res.Glossary[0].Term != "dharma" {
		t.Errorf("glossary = %+v", res.Glossary)
	}
	if len(res.Consistency) != 1 || res.Consistency[0] != "One issue." {
		t.Errorf("consistency = %v", res.Consistency)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
	if svc.calls != 3 {
		t.Errorf("expected 3 requests, got %d", svc.calls)
	}
}

func TestRun_AnalysisDegrades(t *testing.T) {
	svc := &scriptedService{
		responses: []string{"Edited text.", "not json", "also not json"},
	}
	o := New(svc, 0, nil)

	res, err := o.Run(context.Background(), "text", internal.ProofreadRequest{
		GenerateGlossary:  true,
		ConsistencyReport: true,
	})
	if err != nil {
		t.Fatalf("analysis failure must not abort: %v", err)
	}
	if len(res.Glossary) != 1 || res.Glossary[0].Term != "Error" {
		t.Errorf("expected glossary placeholder, got %+v", res.Glossary)
	}
	if len(res.Consistency) != 1 || res.Consistency[0] != "Failed to generate report." {
		t.Errorf("expected consistency placeholder, got %v", res.Consistency)
	}
	if len(res.Warnings) != 2 {
		t.Errorf("expected 2 warnings, got %v", res.Warnings)
	}
}

func TestAssemble(t *testing.T) {
	res := &Result{
		EditedManuscript: "Intro text.\n[H1]Chapter One[/H1]\nBody.",
		Glossary: []internal.GlossaryEntry{
			{Term: "dharma", Translation: "duty"},
		},
		Consistency: []string{"One issue."},
	}

	model := Assemble(res, internal.DefaultStyle())

	// Body: intro paragraph, heading, body paragraph.
	// Glossary: page break, heading, table. Notes: heading, paragraph.
	if len(model.Blocks) != 8 {
		t.Fatalf("expected 8 blocks, got %d", len(model.Blocks))
	}
	var sawTable, sawNotes bool
	for _, b := range model.Blocks {
		switch blk := b.(type) {
		case *render.Table:
			sawTable = true
			if len(blk.Rows) != 1 || blk.Rows[0][0] != "dharma" {
				t.Errorf("glossary rows = %v", blk.Rows)
			}
		case *render.SectionHeading:
			if blk.Text == "Consistency Notes" {
				sawNotes = true
			}
		}
	}
	if !sawTable {
		t.Error("missing glossary table")
	}
	if !sawNotes {
		t.Error("missing consistency notes heading")
	}
}

func TestAssemble_NoExtras(t *testing.T) {
	res := &Result{EditedManuscript: "Just a paragraph."}
	model := Assemble(res, internal.DefaultStyle())
	if len(model.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(model.Blocks))
	}
	p, ok := model.Blocks[0].(*render.Paragraph)
	if !ok || !strings.Contains(p.Runs[0].Text, "Just a paragraph.") {
		t.Errorf("unexpected block: %+v", model.Blocks[0])
	}
}
