package renamer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"reelmatch/internal/logging"
	"reelmatch/internal/matcher"
	"reelmatch/internal/media"
)

// MatchSeries resolves a batch against series metadata. Video files are
// grouped by shared name or folder, each group is resolved with one query
// round, and subtitle/NFO files inherit the candidate of the primary file
// they derive from.
//
// Failure handling follows the matching policy: strict-mode ambiguity aborts
// the whole pass, any other group failure, transient lookups included,
// degrades that group to unmatched and sibling groups proceed. Matches and
// unmatched files come back in input file order regardless of group resolve
// order.
func (e *Engine) MatchSeries(ctx context.Context, files []media.File, opts Options) (*Result, error) {
	if err := e.requireProvider("episode", e.episodes != nil); err != nil {
		return nil, err
	}
	if opts.Strict && len(splitQueries(opts.Query)) > 1 {
		return nil, fmt.Errorf("%w: strict matching allows a single query", matcher.ErrInvalidQuery)
	}

	videos := media.Filter(files, media.KindVideo)
	aux := media.Filter(files, media.KindSubtitle, media.KindNFO)
	nm := e.nameMatcher()
	groups := matcher.GroupFiles(videos, nm)

	result := &Result{}
	var primary []matcher.Match
	for _, group := range groups {
		matches, unmatched, err := e.matchSeriesGroup(ctx, group, opts)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if opts.Strict && (errors.Is(err, matcher.ErrAmbiguousSelection) || errors.Is(err, matcher.ErrAmbiguousMatch)) {
				return nil, err
			}
			e.logger.Warn("series group unresolved",
				logging.String(logging.FieldGroup, group.Key),
				logging.Int(logging.FieldFileCount, len(group.Files)),
				logging.Error(err))
			result.Unmatched = append(result.Unmatched, group.Files...)
			continue
		}
		primary = append(primary, matches...)
		result.Unmatched = append(result.Unmatched, unmatched...)
	}

	result.Matches = append(result.Matches, primary...)
	result.Matches = append(result.Matches, matcher.LinkDerived(aux, primary)...)
	sortByInput(result, files)

	e.logger.Info("series matching finished",
		logging.Int("matched", len(result.Matches)),
		logging.Int("unmatched", len(result.Unmatched)))
	return result, nil
}

func (e *Engine) matchSeriesGroup(ctx context.Context, group matcher.Group, opts Options) ([]matcher.Match, []media.File, error) {
	queries := group.Queries
	if opts.Query != "" {
		queries = splitQueries(opts.Query)
	}
	if len(queries) == 0 {
		names := make([]string, 0, len(group.Files))
		for _, f := range group.Files {
			names = append(names, f.Name)
		}
		queries = e.nameMatcher().DetectQueries(names)
	}
	if len(queries) == 0 {
		return nil, nil, fmt.Errorf("%w: no usable series query in group %s", matcher.ErrInvalidQuery, group.Key)
	}

	var pool []matcher.Candidate
	for _, query := range queries {
		raw, err := e.episodes.SearchSeries(ctx, query)
		if err != nil {
			return nil, nil, err
		}
		selected, err := matcher.SelectSearchResults(query, raw, opts.Strict, e.policy)
		if err != nil {
			return nil, nil, err
		}
		for _, series := range selected {
			e.logger.Debug("fetching episode set",
				logging.String(logging.FieldQuery, query),
				logging.String("series", series.Name),
				logging.String(logging.FieldProvider, series.Provider))
			episodes, err := e.episodes.ListEpisodes(ctx, series, opts.Order)
			if err != nil {
				return nil, nil, err
			}
			pool = append(pool, episodes...)
		}
	}

	return matcher.MatchEpisodes(group.Files, pool, opts.Strict, e.policy)
}

// splitQueries splits a user query on "|" so one invocation can pool the
// episode sets of several series (crossover batches).
func splitQueries(query string) []string {
	var out []string
	for _, part := range strings.Split(query, "|") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
