package namematch

import "testing"

func TestClassifyBatchEpisodeOriented(t *testing.T) {
	// 7 of 10 names carry SxxEyy numbering: 70% > 65% threshold.
	names := []string{
		"Show.A.S01E01.720p",
		"Show.A.S01E02.720p",
		"Show.A.S01E03.720p",
		"Show.B.S02E01.1080p",
		"Show.B.S02E02.1080p",
		"Show.B.S02E03.1080p",
		"Show.B.S02E04.1080p",
		"Random.Movie.2019.1080p",
		"Another.Film.2021.720p",
		"Concert.Recording.2022",
	}

	m := NewMatcher()
	mode, stats := m.ClassifyBatch(names, DefaultEpisodeShare)
	if stats.NumberedFiles != 7 {
		t.Fatalf("NumberedFiles = %d, want 7", stats.NumberedFiles)
	}
	if mode != ModeSeries {
		t.Errorf("mode = %v, want series", mode)
	}
}

func TestClassifyBatchMovieOriented(t *testing.T) {
	names := []string{
		"First.Movie.2019.1080p",
		"Second.Movie.2020.720p",
		"Third.Film.2021.2160p",
		"Fourth.Picture.1999.480p",
		"Fifth.Feature.2005",
	}

	m := NewMatcher()
	mode, _ := m.ClassifyBatch(names, DefaultEpisodeShare)
	if mode != ModeMovie {
		t.Errorf("mode = %v, want movie", mode)
	}
}

func TestClassifyBatchExactThresholdNotExceeded(t *testing.T) {
	// 65% exactly does not exceed the threshold; the rule is strictly greater.
	names := []string{
		"A.S01E01", "A.S01E02", "A.S01E03", "A.S01E04", "A.S01E05",
		"A.S01E06", "A.S01E07", "A.S01E08", "A.S01E09", "A.S01E10",
		"A.S01E11", "A.S01E12", "A.S01E13",
		"M.One.2019", "M.Two.2020", "M.Three.2021", "M.Four.2022",
		"M.Five.2023", "M.Six.2024", "M.Seven.2025",
	}
	// 13 of 20 numbered = 65% exactly.
	m := &Matcher{MinSeqLength: 99, MinBatch: 99} // disable anchor detection
	mode, stats := m.ClassifyBatch(names, DefaultEpisodeShare)
	if stats.NumberedFiles != 13 {
		t.Fatalf("NumberedFiles = %d, want 13", stats.NumberedFiles)
	}
	if mode != ModeMovie {
		t.Errorf("mode = %v, want movie at exactly 65%%", mode)
	}
}

func TestClassifyBatchEmpty(t *testing.T) {
	m := NewMatcher()
	mode, stats := m.ClassifyBatch(nil, 0)
	if mode != ModeMovie || stats.Total != 0 {
		t.Errorf("empty batch: mode = %v, stats = %+v", mode, stats)
	}
}
