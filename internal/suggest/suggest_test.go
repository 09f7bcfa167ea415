package suggest

import (
	"slices"
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"base_url", "base_url", 0},
		{"線形代数", "線形代", 1},
		{"確率統計", "確立統計", 1},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestClosest(t *testing.T) {
	keys := []string{"base_url", "case_sensitive_name", "data_file", "storage"}
	tests := []struct {
		in   string
		want []string
	}{
		{"base-url", []string{"base_url"}},
		{"STORAGE", []string{"storage"}},
		{"--data_fil", []string{"data_file"}},
		{"priority", nil},
	}
	for _, tt := range tests {
		if got := Closest(tt.in, keys); !slices.Equal(got, tt.want) {
			t.Errorf("Closest(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClosest_SubstringAndLimit(t *testing.T) {
	cols := []string{"course", "name", "due", "locked", "submitted"}
	if got := Closest("submit", cols); !slices.Equal(got, []string{"submitted"}) {
		t.Errorf("Closest(submit) = %v", got)
	}

	many := []string{"aa", "ab", "ac", "ad", "ae"}
	if got := Closest("a", many); len(got) != maxSuggestions {
		t.Errorf("got %d suggestions, want %d", len(got), maxSuggestions)
	}
}

func TestHint(t *testing.T) {
	if got := Hint("lockd", []string{"locked", "due"}); got != "did you mean locked?" {
		t.Errorf("Hint = %q", got)
	}
	if got := Hint("zzzzzz", []string{"due"}); got != "" {
		t.Errorf("Hint = %q, want empty", got)
	}
}
