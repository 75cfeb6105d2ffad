package matcher

import "errors"

var (
	// ErrNoMatch indicates no candidate met any acceptance floor.
	ErrNoMatch = errors.New("no match")

	// ErrAmbiguousSelection indicates more than one equally plausible search
	// result under strict policy.
	ErrAmbiguousSelection = errors.New("ambiguous selection")

	// ErrAmbiguousMatch indicates two candidates tied within an
	// indistinguishable margin for the same file under strict policy.
	ErrAmbiguousMatch = errors.New("ambiguous match")

	// ErrInvalidQuery indicates an empty or undefined query where one was
	// required.
	ErrInvalidQuery = errors.New("invalid query")
)
