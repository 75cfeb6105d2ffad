package media

import "strings"

// languageSuffixes are tag suffixes commonly appended to subtitle file names
// ("Movie.2020.eng", "Movie.2020.forced"). They are ignored when testing
// name derivation, but only on subtitle files: a video called "Step.It" keeps
// its last word.
var languageSuffixes = []string{
	"eng", "en", "ger", "de", "fre", "fr", "spa", "es", "ita", "it",
	"por", "pt", "jpn", "ja", "chi", "zh", "rus", "ru", "nld", "nl",
	"forced", "sdh", "cc", "default",
}

// IsDerived reports whether two files are tied by filename derivation: both
// live in the same directory and, after stripping language suffixes from
// subtitle names, one base name is a case-insensitive prefix of the other.
// Typical pairs: Movie.2020.mkv / Movie.2020.srt, or Movie.2020.mkv /
// Movie.2020.eng.srt.
func IsDerived(a, b File) bool {
	if a.Dir != b.Dir {
		return false
	}
	na := derivationBase(a)
	nb := derivationBase(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.HasPrefix(na, nb) || strings.HasPrefix(nb, na)
}

func derivationBase(f File) string {
	lowered := strings.ToLower(f.Name)
	if f.Kind != KindSubtitle {
		return strings.TrimSpace(lowered)
	}
	for changed := true; changed; {
		changed = false
		for _, suffix := range languageSuffixes {
			for _, sep := range []string{".", "_", "-", " "} {
				tail := sep + suffix
				if strings.HasSuffix(lowered, tail) {
					lowered = strings.TrimSuffix(lowered, tail)
					changed = true
				}
			}
		}
	}
	return strings.TrimSpace(lowered)
}
