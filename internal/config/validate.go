package config

import (
	"errors"
	"fmt"
)

var validActions = map[string]struct{}{
	"move": {}, "copy": {}, "hardlink": {}, "symlink": {}, "dryrun": {},
}

var validConflicts = map[string]struct{}{
	"skip": {}, "fail": {}, "override": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateRename(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLibrary() error {
	if c.Library.MoviesDir == "" {
		return errors.New("library.movies_dir must be set")
	}
	if c.Library.TVDir == "" {
		return errors.New("library.tv_dir must be set")
	}
	if c.Library.MusicDir == "" {
		return errors.New("library.music_dir must be set")
	}
	return nil
}

func (c *Config) validateRename() error {
	if _, ok := validActions[c.Rename.Action]; !ok {
		return fmt.Errorf("rename.action must be one of move, copy, hardlink, symlink, dryrun (got %q)", c.Rename.Action)
	}
	if _, ok := validConflicts[c.Rename.OnConflict]; !ok {
		return fmt.Errorf("rename.on_conflict must be one of skip, fail, override (got %q)", c.Rename.OnConflict)
	}
	return nil
}

func (c *Config) validateMatching() error {
	for name, value := range map[string]float64{
		"matching.strict_floor":     c.Matching.StrictFloor,
		"matching.lenient_floor":    c.Matching.LenientFloor,
		"matching.prefix_floor":     c.Matching.PrefixFloor,
		"matching.episode_share":    c.Matching.EpisodeShare,
		"matching.min_assign_score": c.Matching.MinAssignScore,
		"matching.tie_margin":       c.Matching.TieMargin,
	} {
		if value < 0 || value > 1 {
			return fmt.Errorf("%s must be between 0 and 1", name)
		}
	}
	if c.Matching.LenientFloor > c.Matching.StrictFloor {
		return errors.New("matching.lenient_floor must not exceed matching.strict_floor")
	}
	if c.Matching.MaxResults <= 0 {
		return errors.New("matching.max_results must be positive")
	}
	if c.Matching.MinBatch <= 0 {
		return errors.New("matching.min_batch must be positive")
	}
	return nil
}

// RequireTMDB fails when no TMDB API key is configured. Lookup-free commands
// skip this check.
func (c *Config) RequireTMDB() error {
	if c.TMDB.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/reelmatch/config.toml"
		}
		return fmt.Errorf("tmdb.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'reelmatch config init')", defaultPath)
	}
	return nil
}
