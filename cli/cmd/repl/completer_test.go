package repl

import (
	"strings"
	"testing"

	"github.com/sahilm/fuzzy"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		input  string
		cursor int
		word   string
		start  int
		end    int
	}{
		{"", 0, "", 0, 0},
		{"width", 5, "width", 0, 5},
		{"width", 2, "width", 0, 5},
		{"a + hei", 7, "hei", 4, 7},
		{"mod(wid, 2)", 7, "wid", 4, 7},
		{"mod(a, ", 7, "", 7, 7},
		{"concat('x', na", 14, "na", 12, 14},
		{"ünï + b", 3, "ünï", 0, 3},
		{"abc", 99, "abc", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			word, start, end := wordBounds([]rune(tt.input), tt.cursor)
			if word != tt.word || start != tt.start || end != tt.end {
				t.Errorf("wordBounds(%q, %d) = %q, %d, %d; expected %q, %d, %d",
					tt.input, tt.cursor, word, start, end, tt.word, tt.start, tt.end)
			}
		})
	}
}

func TestRenderCandidateBar(t *testing.T) {
	matches := fuzzy.Find("a", []string{"alpha", "beta", "gamma", "delta", "mod"})

	full := renderCandidateBar(matches, -1, false, 200)
	for _, m := range matches {
		if !strings.Contains(full, m.Str) {
			t.Errorf("expected %q in %q", m.Str, full)
		}
	}

	narrow := renderCandidateBar(matches, -1, false, 12)
	if !strings.Contains(narrow, "...") {
		t.Errorf("expected ellipsis in narrow bar %q", narrow)
	}

	if renderCandidateBar(nil, 0, false, 80) != "" || renderCandidateBar(matches, 0, false, 0) != "" {
		t.Error("expected empty bar without matches or width")
	}
}

func TestRenderCandidate_FunctionSuffix(t *testing.T) {
	if got := renderCandidate(fuzzy.Match{Str: "mod"}, false); !strings.Contains(got, "()") {
		t.Errorf("expected function suffix in %q", got)
	}

	if got := renderCandidate(fuzzy.Match{Str: "width"}, true); strings.Contains(got, "()") {
		t.Errorf("expected no suffix for variable in %q", got)
	}
}
