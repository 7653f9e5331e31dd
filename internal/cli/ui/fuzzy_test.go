package ui

import (
	"reflect"
	"testing"
)

func TestLevenshteinDistance(t *testing.T) {
	cases := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"label", "label", 0},
		{"lable", "label", 2},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
	}

	for _, tc := range cases {
		if got := LevenshteinDistance(tc.s1, tc.s2); got != tc.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tc.s1, tc.s2, got, tc.want)
		}
	}
}

func TestFindSimilar(t *testing.T) {
	candidates := []string{"label", "units", "default", "bounds"}

	got := FindSimilar("lable", candidates)
	if len(got) == 0 || got[0] != "label" {
		t.Errorf("expected 'label' as best match, got %v", got)
	}

	got = FindSimilar("zzzzzzzzzz", candidates)
	if len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestFindSimilar_CaseInsensitive(t *testing.T) {
	got := FindSimilar("LABEL", []string{"label"})
	if !reflect.DeepEqual(got, []string{"label"}) {
		t.Errorf("expected case-insensitive match, got %v", got)
	}
}

func TestFindSimilar_LimitsSuggestions(t *testing.T) {
	candidates := []string{"kind1", "kind2", "kind3", "kind4", "kind5"}
	got := FindSimilar("kind", candidates)
	if len(got) > DefaultMaxSuggestions {
		t.Errorf("expected at most %d suggestions, got %d", DefaultMaxSuggestions, len(got))
	}
}
