package renamer

import (
	"context"
	"errors"
	"sort"
	"strings"

	"reelmatch/internal/logging"
	"reelmatch/internal/matcher"
	"reelmatch/internal/media"
)

// MatchMovie resolves each video file independently against movie metadata.
// Identical queries hit the provider once per pass. Files resolving to the
// same movie with the same extension are treated as a multi-part release and
// receive part numbers; subtitles and NFO files inherit the candidate of the
// file they derive from.
func (e *Engine) MatchMovie(ctx context.Context, files []media.File, opts Options) (*Result, error) {
	if err := e.requireProvider("movie", e.movies != nil); err != nil {
		return nil, err
	}

	videos := media.Filter(files, media.KindVideo)
	aux := media.Filter(files, media.KindSubtitle, media.KindNFO)

	type selectionKey struct {
		query string
		year  int
	}
	selections := make(map[selectionKey][]matcher.SearchResult)
	details := make(map[int64]matcher.Movie)

	result := &Result{}
	var primary []matcher.Match
	for _, file := range videos {
		query := opts.Query
		year := opts.Year
		if query == "" {
			query = media.StripReleaseInfo(file.Name)
			if year == 0 {
				if y, ok := media.ParseYear(file.Name); ok {
					year = y
				}
			}
		}
		if strings.TrimSpace(query) == "" {
			result.Unmatched = append(result.Unmatched, file)
			continue
		}

		key := selectionKey{query: query, year: year}
		selected, cached := selections[key]
		if !cached {
			var err error
			selected, err = e.selectMovie(ctx, query, year, opts.Strict)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				if opts.Strict && errors.Is(err, matcher.ErrAmbiguousSelection) {
					return nil, err
				}
				e.logger.Warn("movie unresolved",
					logging.String(logging.FieldQuery, query),
					logging.Error(err))
				selected = nil
			}
			selections[key] = selected
		}
		if len(selected) == 0 {
			result.Unmatched = append(result.Unmatched, file)
			continue
		}

		best := selected[0]
		movie, ok := details[best.ID]
		if !ok {
			var err error
			movie, err = e.movies.MovieDetails(ctx, best.ID)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				e.logger.Warn("movie details unavailable",
					logging.Int64("id", best.ID),
					logging.Error(err))
				result.Unmatched = append(result.Unmatched, file)
				continue
			}
			details[best.ID] = movie
		}

		candidate := matcher.MovieCandidate(movie)
		clone := candidate.Clone()
		primary = append(primary, matcher.Match{File: file, Candidate: &clone})
	}

	assignParts(primary)
	result.Matches = append(result.Matches, primary...)
	result.Matches = append(result.Matches, matcher.LinkDerived(aux, primary)...)
	sortByInput(result, files)

	e.logger.Info("movie matching finished",
		logging.Int("matched", len(result.Matches)),
		logging.Int("unmatched", len(result.Unmatched)))
	return result, nil
}

func (e *Engine) selectMovie(ctx context.Context, query string, year int, strict bool) ([]matcher.SearchResult, error) {
	raw, err := e.movies.SearchMovies(ctx, query, year)
	if err != nil {
		return nil, err
	}
	return matcher.SelectSearchResults(query, raw, strict, e.policy)
}

// assignParts numbers multi-part releases. Matches resolving to the same
// movie id with the same extension form one part set, ordered by file name
// so CD1/CD2 style suffixes come out in sequence. Singleton sets keep part
// numbering at zero.
func assignParts(matches []matcher.Match) {
	type setKey struct {
		id  int64
		ext string
	}
	sets := make(map[setKey][]int)
	for i, m := range matches {
		if m.Candidate == nil || m.Candidate.Movie == nil {
			continue
		}
		key := setKey{id: m.Candidate.Movie.ID, ext: m.File.Ext}
		sets[key] = append(sets[key], i)
	}
	for _, indices := range sets {
		if len(indices) < 2 {
			continue
		}
		sort.Slice(indices, func(a, b int) bool {
			return matches[indices[a]].File.Name < matches[indices[b]].File.Name
		})
		for part, idx := range indices {
			matches[idx].Candidate.Movie.Part = part + 1
			matches[idx].Candidate.Movie.PartCount = len(indices)
		}
	}
}
