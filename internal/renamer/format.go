package renamer

import (
	"fmt"
	"path/filepath"
	"strings"

	"reelmatch/internal/config"
	"reelmatch/internal/matcher"
)

// Render produces the target base name (without extension) for a resolved
// candidate:
//
//	episodes: Series - S01E02 - Title
//	movies:   Title (Year), with a part suffix for multi-part sets
//	tracks:   Artist - Title
func Render(c matcher.Candidate) string {
	switch c.Kind {
	case matcher.KindEpisode:
		ep := c.Episode
		if ep == nil {
			return ""
		}
		name := fmt.Sprintf("%s - S%02dE%02d", ep.SeriesName, ep.Season, ep.Episode)
		if ep.Title != "" {
			name += " - " + ep.Title
		}
		return SanitizeFileName(name)
	case matcher.KindMovie:
		mv := c.Movie
		if mv == nil {
			return ""
		}
		name := mv.Title
		if mv.Year > 0 {
			name = fmt.Sprintf("%s (%d)", mv.Title, mv.Year)
		}
		if mv.PartCount > 1 {
			name = fmt.Sprintf("%s - Part %d", name, mv.Part)
		}
		return SanitizeFileName(name)
	case matcher.KindTrack:
		tr := c.Track
		if tr == nil {
			return ""
		}
		if tr.Artist == "" {
			return SanitizeFileName(tr.Title)
		}
		return SanitizeFileName(tr.Artist + " - " + tr.Title)
	default:
		return ""
	}
}

// invalidFileChars are replaced in rendered names so targets are valid on
// every common filesystem.
var invalidFileChars = strings.NewReplacer(
	"/", "-", "\\", "-", ":", " -", "*", "", "?", "",
	"\"", "'", "<", "", ">", "", "|", "-",
)

// SanitizeFileName makes a rendered name filesystem-safe without changing
// its readable shape.
func SanitizeFileName(name string) string {
	cleaned := invalidFileChars.Replace(name)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return strings.Trim(cleaned, " .")
}

// TargetPath computes the library destination for a match:
//
//	episodes: <library>/<tv>/<Series>/Season 01/<name>.<ext>
//	movies:   <library>/<movies>/<Title (Year)>/<name>.<ext>
//	tracks:   <library>/<music>/<Artist>/<name>.<ext>
func TargetPath(cfg *config.Config, m matcher.Match) (string, error) {
	if m.Candidate == nil {
		return "", fmt.Errorf("no candidate for %s", m.File.Path)
	}
	name := Render(*m.Candidate)
	if name == "" {
		return "", fmt.Errorf("empty rendered name for %s", m.File.Path)
	}
	if m.File.Ext != "" {
		name += "." + m.File.Ext
	}

	var dir string
	switch m.Candidate.Kind {
	case matcher.KindEpisode:
		ep := m.Candidate.Episode
		dir = filepath.Join(cfg.Paths.LibraryDir, cfg.Library.TVDir,
			SanitizeFileName(ep.SeriesName), fmt.Sprintf("Season %02d", ep.Season))
	case matcher.KindMovie:
		mv := m.Candidate.Movie
		folder := mv.Title
		if mv.Year > 0 {
			folder = fmt.Sprintf("%s (%d)", mv.Title, mv.Year)
		}
		dir = filepath.Join(cfg.Paths.LibraryDir, cfg.Library.MoviesDir, SanitizeFileName(folder))
	case matcher.KindTrack:
		artist := m.Candidate.Track.Artist
		if artist == "" {
			artist = "Unknown Artist"
		}
		dir = filepath.Join(cfg.Paths.LibraryDir, cfg.Library.MusicDir, SanitizeFileName(artist))
	default:
		return "", fmt.Errorf("unknown candidate kind for %s", m.File.Path)
	}
	return filepath.Join(dir, name), nil
}
