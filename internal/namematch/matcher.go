package namematch

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"reelmatch/internal/media"
	"reelmatch/internal/textutil"
)

const (
	// defaultMinSeqLength is the minimum shared token run for a common word
	// sequence to count as a series-name anchor. Shorter runs ("the") create
	// false positives.
	defaultMinSeqLength = 2

	// DefaultMinBatch is the smallest batch size for which common-word-
	// sequence detection is statistically meaningful.
	DefaultMinBatch = 5
)

// Matcher extracts candidate series names from batches of file names.
type Matcher struct {
	// MinSeqLength is the minimum token count a shared leading sequence must
	// reach to be accepted as an anchor.
	MinSeqLength int

	// MinBatch is the batch size below which MatchAll returns nothing.
	MinBatch int
}

// NewMatcher returns a Matcher with default thresholds.
func NewMatcher() *Matcher {
	return &Matcher{MinSeqLength: defaultMinSeqLength, MinBatch: DefaultMinBatch}
}

// CommonWordSequence returns the longest shared leading token run between
// two names, comparing token-by-token from the start until divergence. The
// shared prefix is accepted only if it spans at least MinSeqLength tokens.
func (m *Matcher) CommonWordSequence(base, other string) (string, bool) {
	ta := textutil.Tokenize(base)
	tb := textutil.Tokenize(other)
	limit := len(ta)
	if len(tb) < limit {
		limit = len(tb)
	}
	shared := 0
	for shared < limit && ta[shared] == tb[shared] {
		shared++
	}
	if shared < m.minSeqLength() {
		return "", false
	}
	return strings.Join(ta[:shared], " "), true
}

// Covers reports whether anchor is the leading token sequence of name.
func (m *Matcher) Covers(anchor, name string) bool {
	seq, ok := m.CommonWordSequence(anchor, name)
	if !ok {
		return false
	}
	return seq == textutil.Normalize(anchor)
}

// MatchAll computes series-name anchors across a batch by pairwise common-
// word-sequence detection. Batches smaller than MinBatch yield no anchors:
// below that size shared prefixes are more likely coincidence than signal.
// Longer anchors are preferred; an anchor that is itself a prefix of a
// longer accepted anchor is dropped.
func (m *Matcher) MatchAll(names []string) []string {
	if len(names) < m.minBatch() {
		return nil
	}
	seen := make(map[string]int)
	var order []string
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			seq, ok := m.CommonWordSequence(names[i], names[j])
			if !ok {
				continue
			}
			if _, dup := seen[seq]; !dup {
				order = append(order, seq)
			}
			seen[seq]++
		}
	}

	var anchors []string
	for _, seq := range order {
		shadowed := false
		for _, other := range order {
			if other != seq && strings.HasPrefix(other, seq+" ") && seen[other] >= seen[seq] {
				shadowed = true
				break
			}
		}
		if !shadowed {
			anchors = append(anchors, seq)
		}
	}
	return anchors
}

// DetectQueries infers search queries for a batch of raw file names. Names
// with release noise are stripped first; the common-word-sequence anchors
// are used when the batch is large enough, otherwise each distinct stripped
// title becomes its own query.
func (m *Matcher) DetectQueries(names []string) []string {
	stripped := make([]string, 0, len(names))
	for _, name := range names {
		if title := media.StripReleaseInfo(name); title != "" {
			stripped = append(stripped, title)
		}
	}

	titler := cases.Title(language.Und)
	if anchors := m.MatchAll(stripped); len(anchors) > 0 {
		queries := make([]string, 0, len(anchors))
		for _, anchor := range anchors {
			queries = append(queries, titler.String(anchor))
		}
		return queries
	}

	seen := make(map[string]struct{}, len(stripped))
	var queries []string
	for _, title := range stripped {
		key := textutil.Normalize(title)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		queries = append(queries, title)
	}
	return queries
}

func (m *Matcher) minSeqLength() int {
	if m.MinSeqLength > 0 {
		return m.MinSeqLength
	}
	return defaultMinSeqLength
}

func (m *Matcher) minBatch() int {
	if m.MinBatch > 0 {
		return m.MinBatch
	}
	return DefaultMinBatch
}
