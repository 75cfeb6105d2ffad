package renamer

import (
	"path/filepath"
	"strings"
	"testing"

	"reelmatch/internal/config"
	"reelmatch/internal/matcher"
	"reelmatch/internal/media"
)

func TestRenderEpisode(t *testing.T) {
	c := matcher.EpisodeCandidate(matcher.Episode{
		SeriesName: "Breaking Bad", Season: 1, Episode: 2, Title: "Cat's in the Bag...",
	})
	got := Render(c)
	want := "Breaking Bad - S01E02 - Cat's in the Bag..."
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderEpisodeWithoutTitle(t *testing.T) {
	c := matcher.EpisodeCandidate(matcher.Episode{SeriesName: "Show", Season: 2, Episode: 11})
	if got := Render(c); got != "Show - S02E11" {
		t.Errorf("Render = %q, want bare numbering", got)
	}
}

func TestRenderMovie(t *testing.T) {
	c := matcher.MovieCandidate(matcher.Movie{Title: "The Matrix", Year: 1999})
	if got := Render(c); got != "The Matrix (1999)" {
		t.Errorf("Render = %q", got)
	}
}

func TestRenderMoviePart(t *testing.T) {
	c := matcher.MovieCandidate(matcher.Movie{Title: "Gettysburg", Year: 1993, Part: 2, PartCount: 2})
	if got := Render(c); got != "Gettysburg (1993) - Part 2" {
		t.Errorf("Render = %q", got)
	}
}

func TestRenderTrack(t *testing.T) {
	c := matcher.TrackCandidate(matcher.Track{Artist: "Artist", Title: "Song"})
	if got := Render(c); got != "Artist - Song" {
		t.Errorf("Render = %q", got)
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"Title: Subtitle":     "Title - Subtitle",
		"What? Why*":          "What Why",
		`He said "go" <now>`:  "He said 'go' now",
		"A/B\\C|D":            "A-B-C-D",
		"  spaced   out  ":    "spaced out",
		"trailing dots...":    "trailing dots",
		"Plain Name (2020)":   "Plain Name (2020)",
	}
	for in, want := range cases {
		if got := SanitizeFileName(in); got != want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.LibraryDir = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return &cfg
}

func TestTargetPathEpisode(t *testing.T) {
	cfg := testConfig(t)
	c := matcher.EpisodeCandidate(matcher.Episode{SeriesName: "Show", Season: 1, Episode: 3, Title: "Third"})
	m := matcher.Match{File: media.NewFile("/dl/show.s01e03.mkv"), Candidate: &c}

	target, err := TargetPath(cfg, m)
	if err != nil {
		t.Fatalf("TargetPath returned error: %v", err)
	}
	want := filepath.Join(cfg.Paths.LibraryDir, "tv", "Show", "Season 01", "Show - S01E03 - Third.mkv")
	if target != want {
		t.Errorf("target = %q, want %q", target, want)
	}
}

func TestTargetPathMovie(t *testing.T) {
	cfg := testConfig(t)
	c := matcher.MovieCandidate(matcher.Movie{Title: "The Matrix", Year: 1999})
	m := matcher.Match{File: media.NewFile("/dl/matrix.mkv"), Candidate: &c}

	target, err := TargetPath(cfg, m)
	if err != nil {
		t.Fatalf("TargetPath returned error: %v", err)
	}
	want := filepath.Join(cfg.Paths.LibraryDir, "movies", "The Matrix (1999)", "The Matrix (1999).mkv")
	if target != want {
		t.Errorf("target = %q, want %q", target, want)
	}
}

func TestTargetPathTrack(t *testing.T) {
	cfg := testConfig(t)
	c := matcher.TrackCandidate(matcher.Track{Artist: "Artist", Title: "Song"})
	m := matcher.Match{File: media.NewFile("/music/raw.mp3"), Candidate: &c}

	target, err := TargetPath(cfg, m)
	if err != nil {
		t.Fatalf("TargetPath returned error: %v", err)
	}
	if !strings.HasSuffix(target, filepath.Join("music", "Artist", "Artist - Song.mp3")) {
		t.Errorf("target = %q", target)
	}
}

func TestTargetPathSubtitleKeepsExtension(t *testing.T) {
	cfg := testConfig(t)
	c := matcher.EpisodeCandidate(matcher.Episode{SeriesName: "Show", Season: 1, Episode: 1, Title: "Pilot"})
	m := matcher.Match{File: media.NewFile("/dl/show.s01e01.srt"), Candidate: &c}

	target, err := TargetPath(cfg, m)
	if err != nil {
		t.Fatalf("TargetPath returned error: %v", err)
	}
	if !strings.HasSuffix(target, ".srt") {
		t.Errorf("target = %q, want subtitle extension preserved", target)
	}
}

func TestBuildPlanSkipsUnresolved(t *testing.T) {
	cfg := testConfig(t)
	c := matcher.MovieCandidate(matcher.Movie{Title: "Movie", Year: 2020})
	matches := []matcher.Match{
		{File: media.NewFile("/dl/movie.mkv"), Candidate: &c},
		{File: media.NewFile("/dl/orphan.mkv")},
	}
	plan := BuildPlan(cfg, matches)
	if len(plan.Items) != 1 {
		t.Fatalf("got %d plan items, want 1", len(plan.Items))
	}
	if len(plan.Errors) != 0 {
		t.Errorf("unexpected plan errors: %v", plan.Errors)
	}
	if plan.Action != cfg.Rename.Action {
		t.Errorf("plan action = %q, want %q", plan.Action, cfg.Rename.Action)
	}
}
