package textutil

import (
	"math"
	"testing"
)

func TestSimilarityEmptyStrings(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"both empty", "", "", 1},
		{"a empty", "", "The Matrix", 0},
		{"b empty", "The Matrix", "", 0},
		{"separators only", "...", "___", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarityIdenticalAfterNormalization(t *testing.T) {
	tests := []struct {
		a string
		b string
	}{
		{"Show.Name.S01E02", "show_name_s01e02"},
		{"The Matrix", "the-matrix"},
		{"Firefly", "FIREFLY"},
	}

	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); got != 1 {
			t.Errorf("Similarity(%q, %q) = %v, want 1", tt.a, tt.b, got)
		}
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	a := "Office (US)"
	b := "Office"

	ab := Similarity(a, b)
	ba := Similarity(b, a)
	if ab != ba {
		t.Errorf("Similarity not symmetric: %v vs %v", ab, ba)
	}
}

func TestSimilarityMonotonic(t *testing.T) {
	query := "Breaking Bad"
	near := Similarity(query, "Breaking Bad (2008)")
	far := Similarity(query, "Better Call Saul")

	if near <= far {
		t.Errorf("expected %q to score above %q: %v vs %v", "Breaking Bad (2008)", "Better Call Saul", near, far)
	}
}

func TestSimilarityDeterministic(t *testing.T) {
	a := "Twin.Peaks.1x02.dvdrip"
	b := "Twin Peaks"

	first := Similarity(a, b)
	for i := 0; i < 10; i++ {
		if got := Similarity(a, b); got != first {
			t.Fatalf("Similarity unstable: %v then %v", first, got)
		}
	}
}

func TestSimilarityRange(t *testing.T) {
	pairs := [][2]string{
		{"Alias", "Lost"},
		{"Show Name", "Name Show"},
		{"a", "b"},
		{"The Office", "Office"},
	}
	for _, pair := range pairs {
		got := Similarity(pair[0], pair[1])
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q, %q) = %v out of range", pair[0], pair[1], got)
		}
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
	}

	for _, tt := range tests {
		if got := levenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCosineSimilarityTokenOverlap(t *testing.T) {
	a := NewFingerprint("the quick brown fox")
	b := NewFingerprint("the slow brown cat")

	got := CosineSimilarity(a, b)
	if got <= 0 || got >= 1 {
		t.Errorf("CosineSimilarity(partial overlap) = %v, want between 0 and 1", got)
	}
}

func TestCosineSimilarityNil(t *testing.T) {
	if got := CosineSimilarity(nil, NewFingerprint("x")); got != 0 {
		t.Errorf("CosineSimilarity(nil, fp) = %v, want 0", got)
	}
	if got := CosineSimilarity(NewFingerprint("x"), nil); got != 0 {
		t.Errorf("CosineSimilarity(fp, nil) = %v, want 0", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Show.Name.S01E02", "show name s01e02"},
		{"  A__B--C  ", "a b c"},
		{"", ""},
		{"...", ""},
		{"Movie (2020) [1080p]", "movie 2020 1080p"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"release name", "Show.Name.S01E02.720p", []string{"show", "name", "s01e02", "720p"}},
		{"keeps short tokens", "Lord of the Rings", []string{"lord", "of", "the", "rings"}},
		{"empty", "", nil},
		{"separators only", "-_.", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFingerprintNorm(t *testing.T) {
	// "show show name" -> show:2, name:1, norm = sqrt(5)
	fp := NewFingerprint("show show name")
	if fp == nil {
		t.Fatal("expected fingerprint")
	}
	want := math.Sqrt(5)
	if math.Abs(fp.norm-want) > 0.0001 {
		t.Errorf("norm = %v, want %v", fp.norm, want)
	}
	if fp.TokenCount() != 2 {
		t.Errorf("TokenCount() = %d, want 2", fp.TokenCount())
	}
}
