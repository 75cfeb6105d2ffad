package matcher

import (
	"fmt"
	"sort"
	"strings"

	"reelmatch/internal/media"
	"reelmatch/internal/textutil"
)

// numberingWeight lifts exact season/episode equality above any title
// similarity score, so numbered matches always dominate fuzzy ones.
const numberingWeight = 2.0

// airDateBonus rewards a file name that embeds the candidate's air date.
const airDateBonus = 1.0

// MatchEpisodes assigns each file to at most one candidate using greedy
// bipartite matching over a composite score: season/episode-number equality
// when both sides expose one, title similarity, and air-date proximity.
// Accepted pairs remove both the file and the candidate from further
// consideration.
//
// Strict mode fails the entire pass with ErrAmbiguousMatch as soon as two
// candidates are tied within Policy.TieMargin for the same file; lenient
// mode breaks ties by first-seen order. Files with no candidate scoring at
// least Policy.MinAssignScore are returned as unmatched, never dropped.
// Matches preserve input file order.
func MatchEpisodes(files []media.File, candidates []Candidate, strict bool, policy Policy) ([]Match, []media.File, error) {
	type pair struct {
		file  int
		cand  int
		score float64
	}

	var pairs []pair
	for fi, file := range files {
		fileNum, fileHasNum := media.ParseEpisodeNumber(file.Name)
		for ci, cand := range candidates {
			score, eligible := scorePair(file, fileNum, fileHasNum, cand)
			if !eligible || score < policy.MinAssignScore {
				continue
			}
			pairs = append(pairs, pair{file: fi, cand: ci, score: score})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].score != pairs[j].score {
			return pairs[i].score > pairs[j].score
		}
		if pairs[i].file != pairs[j].file {
			return pairs[i].file < pairs[j].file
		}
		return pairs[i].cand < pairs[j].cand
	})

	fileTaken := make([]bool, len(files))
	candTaken := make([]bool, len(candidates))
	assigned := make(map[int]int, len(files)) // file index -> candidate index

	for i, p := range pairs {
		if fileTaken[p.file] || candTaken[p.cand] {
			continue
		}
		if strict {
			for _, q := range pairs[i+1:] {
				if q.file != p.file || q.cand == p.cand || candTaken[q.cand] {
					continue
				}
				if p.score-q.score < policy.TieMargin {
					return nil, nil, fmt.Errorf("%w: %s matches both %q and %q",
						ErrAmbiguousMatch, files[p.file].Name,
						candidates[p.cand].DisplayName(), candidates[q.cand].DisplayName())
				}
				break
			}
		}
		fileTaken[p.file] = true
		candTaken[p.cand] = true
		assigned[p.file] = p.cand
	}

	var matches []Match
	var unmatched []media.File
	for fi, file := range files {
		ci, ok := assigned[fi]
		if !ok {
			unmatched = append(unmatched, file)
			continue
		}
		clone := candidates[ci].Clone()
		matches = append(matches, Match{File: file, Candidate: &clone})
	}
	return matches, unmatched, nil
}

// scorePair computes the composite score for a file/candidate pairing.
// Conflicting numbering on both sides disqualifies the pair outright.
func scorePair(file media.File, fileNum media.EpisodeNumber, fileHasNum bool, cand Candidate) (float64, bool) {
	stripped := media.StripReleaseInfo(file.Name)
	title := textutil.Similarity(stripped, candidateTitle(cand))
	if full := textutil.Similarity(file.Name, cand.DisplayName()); full > title {
		title = full
	}

	if cand.Kind == KindEpisode && cand.Episode != nil {
		ep := cand.Episode
		if ep.Title != "" {
			if s := textutil.Similarity(stripped, ep.SeriesName+" "+ep.Title); s > title {
				title = s
			}
		}
		if fileHasNum {
			if fileNum.Season == ep.Season && fileNum.Episode == ep.Episode {
				return numberingWeight + title, true
			}
			return 0, false
		}
		if !ep.AirDate.IsZero() && nameContainsDate(file.Name, ep) {
			return airDateBonus + title, true
		}
	}
	return title, true
}

// candidateTitle is the identity portion a stripped file name is compared
// against: series name for episodes, plain title for movies and tracks.
func candidateTitle(cand Candidate) string {
	switch cand.Kind {
	case KindEpisode:
		if cand.Episode != nil {
			return cand.Episode.SeriesName
		}
	case KindMovie:
		if cand.Movie != nil {
			return cand.Movie.Title
		}
	case KindTrack:
		if cand.Track != nil {
			return cand.Track.Title
		}
	}
	return ""
}

var airDateLayouts = []string{"2006-01-02", "2006.01.02", "2006 01 02", "20060102"}

func nameContainsDate(name string, ep *Episode) bool {
	for _, layout := range airDateLayouts {
		if strings.Contains(name, ep.AirDate.Format(layout)) {
			return true
		}
	}
	return false
}
