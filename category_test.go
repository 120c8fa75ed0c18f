package wikipix

import (
	"reflect"
	"testing"
)

func TestClassifyCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		category string
		want     []Hint
	}{
		{
			name:     "80s pop musicians fires music only",
			category: "80s pop musicians",
			want:     []Hint{HintMusic},
		},
		{
			name:     "world landmarks fires nothing",
			category: "world landmarks",
			want:     nil,
		},
		{
			name:     "science fiction film fires film and science",
			category: "science fiction film",
			want:     []Hint{HintFilm, HintScience},
		},
		{
			name:     "rock stars fires music and film",
			category: "rock stars",
			want:     []Hint{HintMusic, HintFilm},
		},
		{
			name:     "matching is case-insensitive",
			category: "NOBEL Prize winners",
			want:     []Hint{HintScience},
		},
		{
			name:     "british monarchs fires politics",
			category: "British monarchs",
			want:     []Hint{HintPolitics},
		},
		{
			name:     "olympic athletes fires sports",
			category: "Olympic athletes",
			want:     []Hint{HintSports},
		},
		{
			name:     "empty category fires nothing",
			category: "",
			want:     nil,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ClassifyCategory(tc.category)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ClassifyCategory(%q) = %v, want %v", tc.category, got, tc.want)
			}
		})
	}
}

func TestHintString(t *testing.T) {
	t.Parallel()

	if got := HintMusic.String(); got != "music" {
		t.Errorf("HintMusic.String() = %q, want %q", got, "music")
	}
	if got := HintGeneric.String(); got != "generic" {
		t.Errorf("HintGeneric.String() = %q, want %q", got, "generic")
	}
}

func TestHintTermsPreservesTableOrder(t *testing.T) {
	t.Parallel()

	got := hintTerms([]Hint{HintMusic, HintPolitics})
	want := []string{"musician", "band", "singer", "musical artist", "politician", "leader", "monarch"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("hintTerms = %v, want %v", got, want)
	}
}
