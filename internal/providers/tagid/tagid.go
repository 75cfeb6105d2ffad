// Package tagid identifies audio files from their embedded tags.
package tagid

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"

	"reelmatch/internal/matcher"
	"reelmatch/internal/media"
	"reelmatch/internal/providers"
)

// Identifier reads ID3/Vorbis/MP4 tags to resolve audio files.
type Identifier struct{}

var _ providers.MusicIdentifier = Identifier{}

// New returns a tag-based music identifier.
func New() Identifier {
	return Identifier{}
}

// IdentifyTrack reads the embedded tags of the file at path. When the file
// carries no usable tags, the title falls back to the cleaned file name so
// the caller still gets a renameable record.
func (Identifier) IdentifyTrack(ctx context.Context, path string) (matcher.Track, error) {
	if err := ctx.Err(); err != nil {
		return matcher.Track{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return matcher.Track{}, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return fallbackTrack(path), nil
	}

	track := matcher.Track{
		Artist: strings.TrimSpace(m.Artist()),
		Title:  strings.TrimSpace(m.Title()),
		Album:  strings.TrimSpace(m.Album()),
	}
	if track.Artist == "" {
		track.Artist = strings.TrimSpace(m.AlbumArtist())
	}
	if track.Title == "" {
		track.Title = fallbackTrack(path).Title
	}
	return track, nil
}

func fallbackTrack(path string) matcher.Track {
	file := media.NewFile(path)
	return matcher.Track{Title: media.StripReleaseInfo(file.Name)}
}
