package core

import "testing"

func TestCleanString(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		lower bool
		want  string
	}{
		{name: "trims whitespace", s: "  hello  ", want: "hello"},
		{name: "lowers on demand", s: " HeLLo ", lower: true, want: "hello"},
		{name: "keeps case by default", s: "HeLLo", want: "HeLLo"},
		{name: "empty", s: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.lower {
				got = CleanString(tt.s, true)
			} else {
				got = CleanString(tt.s)
			}
			if got != tt.want {
				t.Errorf("CleanString(%q) = %q; want %q", tt.s, got, tt.want)
			}
		})
	}
}
