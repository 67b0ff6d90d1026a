package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/valpere/pandulipi/internal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_New(t *testing.T) {
	s := newTestStore(t)
	if s == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestStore_SaveAndGetJob(t *testing.T) {
	s := newTestStore(t)

	job := internal.ProofreadJob{
		Filename:      "draft.docx",
		AuthorPersona: "A Vedanta scholar",
		BookSummary:   "Commentary on the Gita",
		LanguageRules: "Sanskrit in Devanagari",
		RawChars:      1200,
		EditedChars:   1180,
		ServiceUsed:   "gemini",
		Status:        "completed",
	}
	glossary := []internal.GlossaryEntry{
		{Term: "धर्म", Transliteration: "dharma", Translation: "duty", Context: "Gita 2.31"},
		{Term: "moksha", Translation: "liberation"},
	}

	id, err := s.SaveJob(context.Background(), job, glossary)
	if err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated job ID")
	}

	got, gotGlossary, err := s.GetJob(context.Background(), id)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if got.Filename != "draft.docx" || got.ServiceUsed != "gemini" {
		t.Errorf("job = %+v", got)
	}
	if len(gotGlossary) != 2 {
		t.Fatalf("expected 2 glossary entries, got %d", len(gotGlossary))
	}
	if gotGlossary[0] != glossary[0] {
		t.Errorf("glossary[0] = %+v, want %+v", gotGlossary[0], glossary[0])
	}
	// Order must match analyst order.
	if gotGlossary[1].Term != "moksha" {
		t.Errorf("glossary order broken: %+v", gotGlossary)
	}
}

func TestStore_GetJob_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, _, err := s.GetJob(context.Background(), "missing"); err == nil {
		t.Error("expected error for unknown job")
	}
}

func TestStore_ListJobs(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"a.docx", "b.docx", "c.docx"} {
		if _, err := s.SaveJob(context.Background(), internal.ProofreadJob{Filename: name, Status: "completed"}, nil); err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}
	}

	jobs, err := s.ListJobs(context.Background())
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(jobs) != 3 {
		t.Errorf("expected 3 jobs, got %d", len(jobs))
	}
}

func TestStore_ClearJobs(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.SaveJob(context.Background(), internal.ProofreadJob{Filename: "a.docx"}, []internal.GlossaryEntry{{Term: "x"}}); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}

	n, err := s.ClearJobs(context.Background())
	if err != nil {
		t.Fatalf("ClearJobs failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 cleared job, got %d", n)
	}

	jobs, err := s.ListJobs(context.Background())
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("expected empty history, got %d jobs", len(jobs))
	}
}

func TestStore_Stats(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.SaveJob(context.Background(), internal.ProofreadJob{Filename: "a.docx", Status: "completed"},
		[]internal.GlossaryEntry{{Term: "x"}, {Term: "y"}}); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}
	if _, err := s.SaveJob(context.Background(), internal.ProofreadJob{Filename: "b.docx", Status: "failed", Error: "editor pass failed"}, nil); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}

	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalJobs != 2 || stats.CompletedJobs != 1 || stats.FailedJobs != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.GlossaryTerms != 2 {
		t.Errorf("expected 2 glossary terms, got %d", stats.GlossaryTerms)
	}
}

func TestStore_SnippetEdit_Miss(t *testing.T) {
	s := newTestStore(t)

	_, found, err := s.GetSnippetEdit(context.Background(), "he walk slow", "fix grammar")
	if err != nil {
		t.Fatalf("GetSnippetEdit failed: %v", err)
	}
	if found {
		t.Error("expected cache miss")
	}
}

func TestStore_SnippetEdit_Hit(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveSnippetEdit(context.Background(), "he walk slow", "fix grammar", "He was walking slowly.", "gemini"); err != nil {
		t.Fatalf("SaveSnippetEdit failed: %v", err)
	}

	got, found, err := s.GetSnippetEdit(context.Background(), "he walk slow", "fix grammar")
	if err != nil {
		t.Fatalf("GetSnippetEdit failed: %v", err)
	}
	if !found {
		t.Fatal("expected cache hit")
	}
	if got != "He was walking slowly." {
		t.Errorf("got %q", got)
	}
}

func TestStore_SnippetEdit_NormalizedLookup(t *testing.T) {
	s := newTestStore(t)

	// NFD-composed input should hit an NFC-stored key.
	if err := s.SaveSnippetEdit(context.Background(), "café scene", "tighten", "A café scene.", "gemini"); err != nil {
		t.Fatalf("SaveSnippetEdit failed: %v", err)
	}

	got, found, err := s.GetSnippetEdit(context.Background(), "  café scene  ", "tighten")
	if err != nil {
		t.Fatalf("GetSnippetEdit failed: %v", err)
	}
	if !found {
		t.Fatal("expected normalized cache hit")
	}
	if got != "A café scene." {
		t.Errorf("got %q", got)
	}
}

func TestStore_FuzzyGetSnippetEdit(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveSnippetEdit(context.Background(), "he walked slow down the road", "fix grammar", "He walked slowly down the road.", "gemini"); err != nil {
		t.Fatalf("SaveSnippetEdit failed: %v", err)
	}

	// Near-identical snippet, same command.
	got, found, err := s.FuzzyGetSnippetEdit(context.Background(), "he walked slow down the roads", "fix grammar", 0.9)
	if err != nil {
		t.Fatalf("FuzzyGetSnippetEdit failed: %v", err)
	}
	if !found {
		t.Fatal("expected fuzzy hit")
	}
	if got != "He walked slowly down the road." {
		t.Errorf("got %q", got)
	}

	// Unrelated snippet misses.
	_, found, err = s.FuzzyGetSnippetEdit(context.Background(), "completely different text here", "fix grammar", 0.9)
	if err != nil {
		t.Fatalf("FuzzyGetSnippetEdit failed: %v", err)
	}
	if found {
		t.Error("expected fuzzy miss")
	}

	// Disabled threshold never matches.
	_, found, err = s.FuzzyGetSnippetEdit(context.Background(), "he walked slow down the road", "fix grammar", 0)
	if err != nil {
		t.Fatalf("FuzzyGetSnippetEdit failed: %v", err)
	}
	if found {
		t.Error("threshold 0 should disable fuzzy matching")
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"धर्म", "धर्म", 0},
		{"धर्म", "धरम", 1},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestStringSimilarity(t *testing.T) {
	if got := stringSimilarity("abc", "abc"); got != 1.0 {
		t.Errorf("identical strings: got %v", got)
	}
	if got := stringSimilarity("", ""); got != 1.0 {
		t.Errorf("empty strings: got %v", got)
	}
	if got := stringSimilarity("abcd", "abce"); got != 0.75 {
		t.Errorf("one edit in four: got %v", got)
	}
}
