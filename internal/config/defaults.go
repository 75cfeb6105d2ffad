package config

import "reelmatch/internal/matcher"

const (
	defaultLibraryDir   = "~/library"
	defaultLogDir       = "~/.local/share/reelmatch/logs"
	defaultHistoryDB    = "~/.local/share/reelmatch/history.db"
	defaultMoviesDir    = "movies"
	defaultTVDir        = "tv"
	defaultMusicDir     = "music"
	defaultTMDBLanguage = "en-US"
	defaultTMDBBaseURL  = "https://api.themoviedb.org/3"
	defaultAction       = "move"
	defaultOnConflict   = "skip"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults. Matching
// thresholds mirror the default selection policy.
func Default() Config {
	policy := matcher.DefaultPolicy()
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			LogDir:     defaultLogDir,
			HistoryDB:  defaultHistoryDB,
		},
		TMDB: TMDB{
			Language: defaultTMDBLanguage,
			BaseURL:  defaultTMDBBaseURL,
		},
		Library: Library{
			MoviesDir: defaultMoviesDir,
			TVDir:     defaultTVDir,
			MusicDir:  defaultMusicDir,
		},
		Rename: Rename{
			Action:     defaultAction,
			OnConflict: defaultOnConflict,
		},
		Matching: Matching{
			StrictFloor:    policy.StrictFloor,
			LenientFloor:   policy.LenientFloor,
			PrefixFloor:    policy.PrefixFloor,
			EpisodeShare:   policy.EpisodeShare,
			MaxResults:     policy.MaxResults,
			MinBatch:       policy.MinBatch,
			MinAssignScore: policy.MinAssignScore,
			TieMargin:      policy.TieMargin,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// Policy converts the matching section into a selection policy.
func (c *Config) Policy() matcher.Policy {
	return matcher.Policy{
		StrictFloor:    c.Matching.StrictFloor,
		LenientFloor:   c.Matching.LenientFloor,
		PrefixFloor:    c.Matching.PrefixFloor,
		EpisodeShare:   c.Matching.EpisodeShare,
		MaxResults:     c.Matching.MaxResults,
		MinBatch:       c.Matching.MinBatch,
		MinAssignScore: c.Matching.MinAssignScore,
		TieMargin:      c.Matching.TieMargin,
	}
}
