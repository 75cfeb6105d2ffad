package renamer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"reelmatch/internal/logging"
	"reelmatch/internal/matcher"
	"reelmatch/internal/media"
	"reelmatch/internal/namematch"
	"reelmatch/internal/providers"
)

// Engine resolves batches of files against metadata providers.
type Engine struct {
	episodes providers.EpisodeLister
	movies   providers.MovieIdentifier
	music    providers.MusicIdentifier
	policy   matcher.Policy
	logger   *slog.Logger
}

// Options tunes a single matching pass.
type Options struct {
	// Strict fails on ambiguity instead of picking the best guess.
	Strict bool

	// Query overrides the inferred search query for every group.
	Query string

	// Year narrows movie searches when set.
	Year int

	// Order selects the episode numbering scheme.
	Order providers.SortOrder
}

// Result is the outcome of one matching pass. Matches holds resolved files
// including derived auxiliary files; Unmatched lists every input file that
// could not be assigned.
type Result struct {
	Matches   []matcher.Match
	Unmatched []media.File
}

// New builds an Engine. Any provider may be nil; the corresponding match
// mode then fails with a clear error.
func New(episodes providers.EpisodeLister, movies providers.MovieIdentifier, music providers.MusicIdentifier, policy matcher.Policy, logger *slog.Logger) *Engine {
	return &Engine{
		episodes: episodes,
		movies:   movies,
		music:    music,
		policy:   policy,
		logger:   logging.NewComponentLogger(logger, "engine"),
	}
}

// MatchAuto classifies the batch and dispatches to the fitting mode. A batch
// that is mostly audio goes to music matching; otherwise the share of
// episode-numbered and name-anchored video files decides between series and
// movie matching.
func (e *Engine) MatchAuto(ctx context.Context, files []media.File, opts Options) (*Result, error) {
	audio := media.Filter(files, media.KindAudio)
	videos := media.Filter(files, media.KindVideo)
	if len(audio) > len(videos) {
		return e.MatchMusic(ctx, files, opts)
	}

	nm := e.nameMatcher()
	names := make([]string, 0, len(videos))
	for _, f := range videos {
		names = append(names, f.Name)
	}
	mode, stats := nm.ClassifyBatch(names, e.policy.EpisodeShare)

	e.logger.Debug("classified batch",
		logging.Int(logging.FieldFileCount, len(files)),
		logging.Int("numbered", stats.NumberedFiles),
		logging.Int("anchored", stats.AnchoredFiles),
		logging.String("mode", mode.String()))

	if mode == namematch.ModeSeries {
		return e.MatchSeries(ctx, files, opts)
	}
	return e.MatchMovie(ctx, files, opts)
}

func (e *Engine) nameMatcher() *namematch.Matcher {
	nm := namematch.NewMatcher()
	if e.policy.MinBatch > 0 {
		nm.MinBatch = e.policy.MinBatch
	}
	return nm
}

func (e *Engine) requireProvider(name string, ok bool) error {
	if ok {
		return nil
	}
	return fmt.Errorf("no %s provider configured", name)
}

// sortByInput reorders matches and unmatched files back into the order the
// input files were given, undoing any reshuffling from group-major
// resolution or derived-file linking.
func sortByInput(result *Result, files []media.File) {
	order := make(map[string]int, len(files))
	for i, f := range files {
		order[f.Path] = i
	}
	sort.SliceStable(result.Matches, func(i, j int) bool {
		return order[result.Matches[i].File.Path] < order[result.Matches[j].File.Path]
	})
	sort.SliceStable(result.Unmatched, func(i, j int) bool {
		return order[result.Unmatched[i].Path] < order[result.Unmatched[j].Path]
	})
}
