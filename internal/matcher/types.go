package matcher

import (
	"fmt"
	"time"

	"reelmatch/internal/media"
)

// SearchResult is an identity candidate returned by a metadata provider.
// Equality is by provider and id, never by display name.
type SearchResult struct {
	ID       int64
	Name     string
	Provider string
}

// Same reports identity equality between two search results.
func (r SearchResult) Same(other SearchResult) bool {
	return r.ID == other.ID && r.Provider == other.Provider
}

// CandidateKind tags the variant held by a Candidate.
type CandidateKind int

const (
	KindEpisode CandidateKind = iota
	KindMovie
	KindTrack
)

// Episode is a fully resolved episode record bound to one series identity.
type Episode struct {
	SeriesID   int64
	SeriesName string
	Season     int
	Episode    int
	Title      string
	AirDate    time.Time
}

// Movie is a resolved movie record, with optional part numbering for
// multi-part releases.
type Movie struct {
	ID        int64
	Title     string
	Year      int
	Part      int
	PartCount int
}

// Track is a resolved audio track record.
type Track struct {
	Artist string
	Title  string
	Album  string
}

// Candidate is the tagged variant of renameable metadata. Exactly one of the
// variant pointers is set, matching Kind.
type Candidate struct {
	Kind    CandidateKind
	Episode *Episode
	Movie   *Movie
	Track   *Track
}

// EpisodeCandidate wraps an Episode as a Candidate.
func EpisodeCandidate(ep Episode) Candidate {
	return Candidate{Kind: KindEpisode, Episode: &ep}
}

// MovieCandidate wraps a Movie as a Candidate.
func MovieCandidate(mv Movie) Candidate {
	return Candidate{Kind: KindMovie, Movie: &mv}
}

// TrackCandidate wraps a Track as a Candidate.
func TrackCandidate(tr Track) Candidate {
	return Candidate{Kind: KindTrack, Track: &tr}
}

// Clone returns a deep copy of the candidate. Derived files receive clones
// so that per-file refinement (movie part numbering in particular) never
// mutates a sibling's record.
func (c Candidate) Clone() Candidate {
	out := Candidate{Kind: c.Kind}
	if c.Episode != nil {
		ep := *c.Episode
		out.Episode = &ep
	}
	if c.Movie != nil {
		mv := *c.Movie
		out.Movie = &mv
	}
	if c.Track != nil {
		tr := *c.Track
		out.Track = &tr
	}
	return out
}

// DisplayName returns a human-readable identity for logging and reports.
func (c Candidate) DisplayName() string {
	switch c.Kind {
	case KindEpisode:
		if c.Episode == nil {
			return ""
		}
		return fmt.Sprintf("%s S%02dE%02d %s", c.Episode.SeriesName, c.Episode.Season, c.Episode.Episode, c.Episode.Title)
	case KindMovie:
		if c.Movie == nil {
			return ""
		}
		if c.Movie.Year > 0 {
			return fmt.Sprintf("%s (%d)", c.Movie.Title, c.Movie.Year)
		}
		return c.Movie.Title
	case KindTrack:
		if c.Track == nil {
			return ""
		}
		return fmt.Sprintf("%s - %s", c.Track.Artist, c.Track.Title)
	default:
		return ""
	}
}

// Match pairs a file with its resolved candidate. A nil candidate marks an
// unresolved file; unresolved matches are reported to the caller, never
// dropped.
type Match struct {
	File      media.File
	Candidate *Candidate
}

// Group is a set of files inferred to share one identity-resolution query.
type Group struct {
	Key     string
	Files   []media.File
	Queries []string
}
