package matcher

import (
	"fmt"
	"sort"
	"strings"

	"reelmatch/internal/textutil"
)

// SelectSearchResults filters and ranks search results against a free-text
// query. An empty query scores every result 1.0 (identity already
// disambiguated elsewhere, for example by hash lookup).
//
// Acceptance: similarity at or above the strict floor when strict and more
// than one candidate is in play, the lenient floor otherwise. A result whose
// name starts with the query passes even below the floor, provided the
// similarity reaches the prefix floor or strict mode is off.
//
// When nothing passes the floor, a single raw candidate passes through
// unfiltered (there is no ambiguity to resolve), and non-strict selection
// passes small raw sets (up to MaxResults) through as-is. Anything else is a
// failure: ErrAmbiguousSelection when several raw options exist under strict
// policy, ErrNoMatch otherwise. Strict selection with more than one passing
// candidate fails with ErrAmbiguousSelection; non-strict selection caps the
// ranked list at MaxResults.
func SelectSearchResults(query string, results []SearchResult, strict bool, policy Policy) ([]SearchResult, error) {
	probable := probableMatches(query, results, strict, policy)

	if len(probable) == 0 {
		switch {
		case len(results) == 1:
			// Low-confidence single option: accepted, nothing to disambiguate.
			return append([]SearchResult(nil), results...), nil
		case !strict && len(results) > 0 && len(results) <= policy.MaxResults:
			return append([]SearchResult(nil), results...), nil
		case strict && len(results) > 1:
			return nil, fmt.Errorf("%w: %d options for %q require non-strict matching", ErrAmbiguousSelection, len(results), query)
		default:
			return nil, fmt.Errorf("%w: no acceptable result for %q among %d options", ErrNoMatch, query, len(results))
		}
	}

	if strict && len(probable) > 1 {
		names := make([]string, 0, len(probable))
		for _, r := range probable {
			names = append(names, r.Name)
		}
		return nil, fmt.Errorf("%w: %q matches %s", ErrAmbiguousSelection, query, strings.Join(names, ", "))
	}

	if len(probable) > policy.MaxResults {
		probable = probable[:policy.MaxResults]
	}
	return probable, nil
}

// probableMatches scores every result against the query and keeps the
// plausible ones, sorted by descending similarity. Order among equal scores
// follows the input (stable sort).
func probableMatches(query string, results []SearchResult, strict bool, policy Policy) []SearchResult {
	floor := policy.LenientFloor
	if strict && len(results) > 1 {
		floor = policy.StrictFloor
	}

	type scored struct {
		result SearchResult
		score  float64
	}
	var accepted []scored
	for _, result := range results {
		score := 1.0
		if query != "" {
			score = textutil.Similarity(query, result.Name)
		}
		prefix := query != "" &&
			strings.HasPrefix(strings.ToLower(result.Name), strings.ToLower(query)) &&
			(score >= policy.PrefixFloor || !strict)
		if score < floor && !prefix {
			continue
		}
		duplicate := false
		for _, existing := range accepted {
			if existing.result.Same(result) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			accepted = append(accepted, scored{result: result, score: score})
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].score > accepted[j].score
	})

	out := make([]SearchResult, 0, len(accepted))
	for _, s := range accepted {
		out = append(out, s.result)
	}
	return out
}
