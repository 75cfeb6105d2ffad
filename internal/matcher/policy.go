package matcher

// Policy carries the matching thresholds. The values are empirically chosen
// and preserved for compatibility; treat them as tunable policy rather than
// load-bearing algorithmic constants.
type Policy struct {
	// StrictFloor is the similarity acceptance floor in strict mode when more
	// than one candidate is under consideration.
	StrictFloor float64

	// LenientFloor is the acceptance floor otherwise.
	LenientFloor float64

	// PrefixFloor is the minimum similarity for a prefix match to be accepted
	// in strict mode.
	PrefixFloor float64

	// EpisodeShare is the batch fraction above which a mixed batch is treated
	// as episode-oriented.
	EpisodeShare float64

	// MaxResults caps how many selected search results a non-strict selection
	// may return.
	MaxResults int

	// MinBatch is the smallest batch for common-word-sequence detection.
	MinBatch int

	// MinAssignScore is the minimum composite score for a file/candidate
	// assignment; files below it end the pass unmatched.
	MinAssignScore float64

	// TieMargin is the score distance within which two candidates for the
	// same file are considered indistinguishable under strict policy.
	TieMargin float64
}

// DefaultPolicy returns the standard thresholds.
func DefaultPolicy() Policy {
	return Policy{
		StrictFloor:    0.8,
		LenientFloor:   0.6,
		PrefixFloor:    0.5,
		EpisodeShare:   0.65,
		MaxResults:     5,
		MinBatch:       5,
		MinAssignScore: 0.5,
		TieMargin:      0.01,
	}
}
