package detector

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestDetector_Detect(t *testing.T) {
	d := New()

	tests := []struct {
		name     string
		text     string
		wantLang string
		wantOK   bool
	}{
		{
			name:     "empty text",
			text:     "",
			wantLang: "",
			wantOK:   false,
		},
		{
			name:     "english text",
			text:     "Hello, this is a test in English.",
			wantLang: "English",
			wantOK:   true,
		},
		{
			name:     "hindi text",
			text:     "यह हिंदी में एक परीक्षण वाक्य है।",
			wantLang: "Hindi",
			wantOK:   true,
		},
		{
			name:     "german text",
			text:     "Hallo, das ist ein Test auf Deutsch.",
			wantLang: "German",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, ok := d.Detect(tt.text)
			if ok != tt.wantOK {
				t.Errorf("Detect(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
				return
			}
			if tt.wantOK && lang.String() != tt.wantLang {
				t.Errorf("Detect(%q) = %v, want %v", tt.text, lang, tt.wantLang)
			}
		})
	}
}

func TestDetector_DetectISO(t *testing.T) {
	d := New()

	code, ok := d.DetectISO("Hello, this is a test in English.")
	if !ok {
		t.Fatal("expected detection to succeed")
	}
	if code != "EN" {
		t.Errorf("DetectISO = %q, want %q", code, "EN")
	}

	if _, ok := d.DetectISO(""); ok {
		t.Error("empty text should not detect")
	}
}

type stubService struct {
	response string
	err      error
	prompt   string
}

func (s *stubService) Name() string { return "stub" }

func (s *stubService) Complete(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func TestDetectLanguages_Valid(t *testing.T) {
	d := New()
	svc := &stubService{response: `["English", "Sanskrit", "Hindi"]`}

	got, err := d.DetectLanguages(context.Background(), svc, "mixed manuscript text")
	if err != nil {
		t.Fatalf("DetectLanguages: %v", err)
	}
	want := []string{"English", "Sanskrit", "Hindi"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("lang %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDetectLanguages_SampleBounded(t *testing.T) {
	d := New()
	svc := &stubService{response: `["English"]`}

	long := strings.Repeat("word ", 2000)
	if _, err := d.DetectLanguages(context.Background(), svc, long); err != nil {
		t.Fatalf("DetectLanguages: %v", err)
	}
	if len([]rune(svc.prompt)) > len([]rune(long)) {
		t.Error("prompt should carry a bounded sample, not the full text")
	}
}

func TestDetectLanguages_FallsBack(t *testing.T) {
	d := New()
	english := "This is clearly an English sentence used for detection."

	tests := []struct {
		name string
		svc  *stubService
	}{
		{"service failure", &stubService{err: errors.New("down")}},
		{"malformed json", &stubService{response: "I think it is English."}},
		{"empty array", &stubService{response: `[]`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.DetectLanguages(context.Background(), tt.svc, english)
			if err == nil {
				t.Fatal("expected error")
			}
			if len(got) != 1 || got[0] != "English" {
				t.Errorf("expected statistical fallback [English], got %v", got)
			}
		})
	}
}
