package config

import (
	"fmt"
	"os"
	"strings"
)

// normalize trims string fields, applies environment fallbacks, and expands
// filesystem paths.
func (c *Config) normalize() error {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	if c.TMDB.APIKey == "" {
		c.TMDB.APIKey = strings.TrimSpace(os.Getenv("TMDB_API_KEY"))
	}
	c.TMDB.BaseURL = strings.TrimSpace(c.TMDB.BaseURL)
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.BaseURL = strings.TrimRight(c.TMDB.BaseURL, "/")
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)

	c.Rename.Action = strings.ToLower(strings.TrimSpace(c.Rename.Action))
	if c.Rename.Action == "" {
		c.Rename.Action = defaultAction
	}
	c.Rename.OnConflict = strings.ToLower(strings.TrimSpace(c.Rename.OnConflict))
	if c.Rename.OnConflict == "" {
		c.Rename.OnConflict = defaultOnConflict
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	for name, field := range map[string]*string{
		"paths.library_dir": &c.Paths.LibraryDir,
		"paths.log_dir":     &c.Paths.LogDir,
		"paths.history_db":  &c.Paths.HistoryDB,
	} {
		trimmed := strings.TrimSpace(*field)
		if trimmed == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return fmt.Errorf("expand %s: %w", name, err)
		}
		*field = expanded
	}

	c.Library.MoviesDir = strings.TrimSpace(c.Library.MoviesDir)
	c.Library.TVDir = strings.TrimSpace(c.Library.TVDir)
	c.Library.MusicDir = strings.TrimSpace(c.Library.MusicDir)
	return nil
}
