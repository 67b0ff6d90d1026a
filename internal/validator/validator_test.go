package validator

import "testing"

func TestMatchesSource(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		source  string
		edited  string
		want    bool
		wantErr bool
	}{
		{
			name:   "same language passes",
			source: "this is the raw voice typed draft with many small mistakes in it",
			edited: "This is the raw, voice-typed draft with many small mistakes in it.",
			want:   true,
		},
		{
			name:    "translated output rejected",
			source:  "This is an English draft that should stay in English after editing.",
			edited:  "Dies ist ein deutscher Text, der eindeutig nicht Englisch ist.",
			want:    false,
			wantErr: true,
		},
		{
			name:   "short edited text passes unchecked",
			source: "This is an English draft that should stay in English after editing.",
			edited: "Ok.",
			want:   true,
		},
		{
			name:   "short source passes unchecked",
			source: "hi",
			edited: "Dies ist ein deutscher Text, der eindeutig nicht Englisch ist.",
			want:   true,
		},
		{
			name:    "empty edited text rejected",
			source:  "Some source text.",
			edited:  "   ",
			want:    false,
			wantErr: true,
		},
		{
			name:   "hindi preserved",
			source: "यह हिंदी में लिखा गया एक लंबा परीक्षण वाक्य है जो पर्याप्त है।",
			edited: "यह हिंदी में लिखा गया एक संपादित लंबा परीक्षण वाक्य है जो पर्याप्त है।",
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.MatchesSource(tt.source, tt.edited)
			if got != tt.want {
				t.Errorf("MatchesSource = %v, want %v (err %v)", got, tt.want, err)
			}
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
