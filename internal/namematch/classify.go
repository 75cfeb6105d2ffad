package namematch

import "reelmatch/internal/media"

// Mode is the inferred orientation of a mixed batch.
type Mode int

const (
	ModeMovie Mode = iota
	ModeSeries
)

func (m Mode) String() string {
	if m == ModeSeries {
		return "series"
	}
	return "movie"
}

// DefaultEpisodeShare is the fraction of a batch that must look episode-like
// before the whole batch is treated as series-oriented. Tunable policy, not
// an algorithmic constant.
const DefaultEpisodeShare = 0.65

// BatchStats summarizes how a batch was classified.
type BatchStats struct {
	Total         int
	NumberedFiles int
	AnchoredFiles int
}

// ClassifyBatch decides whether a batch of file names is episode oriented or
// movie oriented. A file counts as episode-like when it carries a recognized
// season/episode numbering pattern, and as anchored when it falls under a
// detected common-word-sequence anchor. If either fraction exceeds
// episodeShare, the batch is series-oriented.
func (m *Matcher) ClassifyBatch(names []string, episodeShare float64) (Mode, BatchStats) {
	if episodeShare <= 0 {
		episodeShare = DefaultEpisodeShare
	}
	stats := BatchStats{Total: len(names)}
	if stats.Total == 0 {
		return ModeMovie, stats
	}

	anchors := m.MatchAll(names)
	for _, name := range names {
		if _, ok := media.ParseEpisodeNumber(name); ok {
			stats.NumberedFiles++
		}
		for _, anchor := range anchors {
			if m.Covers(anchor, name) {
				stats.AnchoredFiles++
				break
			}
		}
	}

	total := float64(stats.Total)
	if float64(stats.NumberedFiles) > total*episodeShare || float64(stats.AnchoredFiles) > total*episodeShare {
		return ModeSeries, stats
	}
	return ModeMovie, stats
}
