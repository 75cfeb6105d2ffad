package media

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cehbz/torrentname"
)

// EpisodeNumber is a season/episode pair extracted from a file name.
type EpisodeNumber struct {
	Season  int
	Episode int
}

// Numbering patterns in priority order. The first pattern that matches wins;
// later patterns are never consulted for the same name.
var numberingPatterns = []*regexp.Regexp{
	// S01E02, s1e2, S01.E02
	regexp.MustCompile(`(?i)\bs(\d{1,2})\.?e(\d{1,3})\b`),
	// 1x02, 01x02
	regexp.MustCompile(`(?i)\b(\d{1,2})x(\d{2,3})\b`),
	// bare 102 / 0102 style numbering, bounded to avoid years and resolutions
	regexp.MustCompile(`\b(\d{1,2})(\d{2})\b`),
}

// yearPattern matches plausible release years so bare-number matching does
// not mistake them for season/episode digits.
var yearPattern = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)

// ParseEpisodeNumber extracts a season/episode identifier from a file name.
// Patterns are tried in priority order and the first full match wins. Names
// without a recognized numbering pattern return ok=false.
func ParseEpisodeNumber(name string) (EpisodeNumber, bool) {
	if parsed := torrentname.Parse(name); parsed != nil && parsed.Season > 0 && parsed.Episode > 0 {
		return EpisodeNumber{Season: parsed.Season, Episode: parsed.Episode}, true
	}
	for i, pattern := range numberingPatterns {
		match := pattern.FindStringSubmatch(name)
		if match == nil {
			continue
		}
		// The bare-number pattern must not swallow years or resolutions.
		if i == len(numberingPatterns)-1 {
			full := match[0]
			if yearPattern.MatchString(full) {
				continue
			}
			if strings.Contains(strings.ToLower(name), full+"p") {
				continue
			}
		}
		season, err1 := strconv.Atoi(match[1])
		episode, err2 := strconv.Atoi(match[2])
		if err1 != nil || err2 != nil || season == 0 || episode == 0 {
			continue
		}
		return EpisodeNumber{Season: season, Episode: episode}, true
	}
	return EpisodeNumber{}, false
}

// ParseYear extracts a release year hint from a file name.
func ParseYear(name string) (int, bool) {
	if parsed := torrentname.Parse(name); parsed != nil && parsed.Year > 0 {
		return parsed.Year, true
	}
	match := yearPattern.FindString(name)
	if match == "" {
		return 0, false
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return year, true
}

// releaseInfoPattern removes common release tags that survive torrentname
// parsing: resolutions, sources, codecs, audio markers, and bracketed junk.
var releaseInfoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\[.*?\]`),
	regexp.MustCompile(`(?i)\b\d{3,4}[pi]\b`),
	regexp.MustCompile(`(?i)\b(bluray|blu-ray|bdrip|brrip|remux|web-?dl|webrip|hdtv|dvdrip|dvd|xvid|divx|x26[45]|h\.?26[45]|hevc|avc|av1)\b`),
	regexp.MustCompile(`(?i)\b(aac|ac3|eac3|dts(-hd)?|truehd|atmos|flac|mp3)\b`),
	regexp.MustCompile(`(?i)\b(proper|repack|internal|limited|unrated|extended|remastered|multi|dubbed|subbed)\b`),
	regexp.MustCompile(`(?i)-[a-z0-9]+$`),
}

// StripReleaseInfo reduces a noisy release name to its human title portion.
// The torrentname parser is consulted first; when it yields a confident
// title, that title is used, otherwise the name is cut at the first
// numbering pattern or year and cleaned with the release-tag bank.
func StripReleaseInfo(name string) string {
	if parsed := torrentname.Parse(name); parsed != nil && strings.TrimSpace(parsed.Title) != "" {
		return strings.TrimSpace(parsed.Title)
	}
	cleaned := name
	for _, pattern := range numberingPatterns[:2] {
		if loc := pattern.FindStringIndex(cleaned); loc != nil {
			cleaned = cleaned[:loc[0]]
			break
		}
	}
	if loc := yearPattern.FindStringIndex(cleaned); loc != nil {
		cleaned = cleaned[:loc[0]]
	}
	for _, pattern := range releaseInfoPatterns {
		cleaned = pattern.ReplaceAllString(cleaned, " ")
	}
	cleaned = strings.Map(func(r rune) rune {
		switch r {
		case '.', '_', '-':
			return ' '
		}
		return r
	}, cleaned)
	return strings.Join(strings.Fields(cleaned), " ")
}
