// Package providers defines the metadata lookup interfaces the matching
// engine consumes and the error contract providers must honor.
package providers

import (
	"context"
	"errors"

	"reelmatch/internal/matcher"
)

// ErrTransientLookup marks provider failures that are worth retrying:
// network errors, timeouts, rate limiting, upstream 5xx. Callers treat it
// as "try again later" rather than "no such title".
var ErrTransientLookup = errors.New("transient lookup failure")

// SortOrder selects the episode numbering scheme a provider should return.
type SortOrder string

const (
	// AirdateOrder numbers episodes by broadcast order, the default.
	AirdateOrder SortOrder = "airdate"
	// DVDOrder numbers episodes by DVD release order where available.
	DVDOrder SortOrder = "dvd"
	// AbsoluteOrder numbers episodes continuously across seasons.
	AbsoluteOrder SortOrder = "absolute"
)

// EpisodeLister resolves series identities and enumerates their episodes.
type EpisodeLister interface {
	// SearchSeries returns raw series candidates for a free-text query.
	SearchSeries(ctx context.Context, query string) ([]matcher.SearchResult, error)

	// ListEpisodes fetches the complete episode set of a resolved series.
	// Providers that do not support the requested order fall back to
	// airdate order.
	ListEpisodes(ctx context.Context, series matcher.SearchResult, order SortOrder) ([]matcher.Candidate, error)
}

// MovieIdentifier resolves movie identities.
type MovieIdentifier interface {
	// SearchMovies returns raw movie candidates for a free-text query.
	// A positive year narrows the search to that release year.
	SearchMovies(ctx context.Context, query string, year int) ([]matcher.SearchResult, error)

	// MovieDetails fetches the full record for a resolved movie id.
	MovieDetails(ctx context.Context, id int64) (matcher.Movie, error)
}

// MusicIdentifier resolves audio files to track records.
type MusicIdentifier interface {
	// IdentifyTrack inspects the file at path and returns its track record.
	IdentifyTrack(ctx context.Context, path string) (matcher.Track, error)
}
