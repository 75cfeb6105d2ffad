package matcher

import (
	"reelmatch/internal/media"
	"reelmatch/internal/namematch"
)

// GroupFiles partitions files into per-identity groups so that metadata
// queries are issued once per group. Files covered by a confident common-
// word-sequence anchor share a name-derived group even across folders; all
// remaining files fall back to one group per folder, the conservative rule
// that never merges unrelated files into one fetch.
//
// Grouping is deterministic: given the same input order it yields identical
// group membership and group order (name groups in anchor order, folder
// groups in order of first file appearance).
func GroupFiles(files []media.File, nm *namematch.Matcher) []Group {
	if nm == nil {
		nm = namematch.NewMatcher()
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	anchors := nm.MatchAll(names)

	groups := make(map[string]*Group)
	var order []string

	add := func(key string, f media.File, queries []string) {
		g, ok := groups[key]
		if !ok {
			g = &Group{Key: key, Queries: queries}
			groups[key] = g
			order = append(order, key)
		}
		g.Files = append(g.Files, f)
	}

	for _, f := range files {
		anchored := false
		for _, anchor := range anchors {
			if nm.Covers(anchor, f.Name) {
				add("name:"+anchor, f, []string{anchor})
				anchored = true
				break
			}
		}
		if !anchored {
			add("folder:"+f.Dir, f, nil)
		}
	}

	out := make([]Group, 0, len(order))
	for _, key := range order {
		out = append(out, *groups[key])
	}
	return out
}
