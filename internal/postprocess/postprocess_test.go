package postprocess

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "clean text untouched",
			in:   "Hello world.",
			want: "Hello world.",
		},
		{
			name: "whitespace trimmed",
			in:   "  result  \n",
			want: "result",
		},
		{
			name: "thinking block removed",
			in:   "<thinking>let me consider</thinking>Final answer.",
			want: "Final answer.",
		},
		{
			name: "think tag variant",
			in:   "<think>hmm</think>\nDone.",
			want: "Done.",
		},
		{
			name: "truncated thinking removed",
			in:   "Partial output.<thinking>never closed",
			want: "Partial output.",
		},
		{
			name: "json fence unwrapped",
			in:   "```json\n[{\"term\": \"dharma\"}]\n```",
			want: "[{\"term\": \"dharma\"}]",
		},
		{
			name: "bare fence unwrapped",
			in:   "```\nplain content\n```",
			want: "plain content",
		},
		{
			name: "interior fence preserved",
			in:   "Before\n```\ncode\n```\nAfter",
			want: "Before\n```\ncode\n```\nAfter",
		},
		{
			name: "edited text echo removed",
			in:   "Here's the edited text: result",
			want: "result",
		},
		{
			name: "edited manuscript echo removed",
			in:   "Here is the edited manuscript:\n[H1]Chapter One[/H1]",
			want: "[H1]Chapter One[/H1]",
		},
		{
			name: "corrected text echo removed",
			in:   "The corrected text: all fixed",
			want: "all fixed",
		},
		{
			name: "polite echo removed",
			in:   "Certainly, here is the revised version: better now",
			want: "better now",
		},
		{
			name: "echo mid-text untouched",
			in:   "He said: here is the edited text: no",
			want: "He said: here is the edited text: no",
		},
		{
			name: "double quote wrapping removed",
			in:   "\"quoted result\"",
			want: "quoted result",
		},
		{
			name: "curly quote wrapping removed",
			in:   "“quoted result”",
			want: "quoted result",
		},
		{
			name: "internal quotes preserved",
			in:   "she said \"hello\" to him",
			want: "she said \"hello\" to him",
		},
		{
			name: "combined artifacts",
			in:   "<thinking>plan</thinking>Here's the edited text: \"clean\"",
			want: "clean",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
