package matcher

import "reelmatch/internal/media"

// LinkDerived associates auxiliary files (subtitles, NFO, artwork) with
// already-matched primary files. An auxiliary file links to the first
// primary match that shares its parent directory and passes the filename
// derivation predicate. Each linked file receives a deep copy of the
// primary candidate, so later per-file refinement cannot cross-contaminate.
func LinkDerived(aux []media.File, primary []Match) []Match {
	var additions []Match
	for _, d := range aux {
		for _, m := range primary {
			if m.Candidate == nil {
				continue
			}
			if !media.IsDerived(d, m.File) {
				continue
			}
			clone := m.Candidate.Clone()
			additions = append(additions, Match{File: d, Candidate: &clone})
			break
		}
	}
	return additions
}
