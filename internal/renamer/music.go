package renamer

import (
	"context"

	"reelmatch/internal/logging"
	"reelmatch/internal/matcher"
	"reelmatch/internal/media"
)

// MatchMusic resolves audio files through the music identifier. Files whose
// tags yield no title stay unmatched; non-audio files are ignored.
func (e *Engine) MatchMusic(ctx context.Context, files []media.File, _ Options) (*Result, error) {
	if err := e.requireProvider("music", e.music != nil); err != nil {
		return nil, err
	}

	audio := media.Filter(files, media.KindAudio)
	result := &Result{}
	for _, file := range audio {
		track, err := e.music.IdentifyTrack(ctx, file.Path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			e.logger.Warn("track unidentified",
				logging.String(logging.FieldPath, file.Path),
				logging.Error(err))
			result.Unmatched = append(result.Unmatched, file)
			continue
		}
		if track.Title == "" {
			result.Unmatched = append(result.Unmatched, file)
			continue
		}
		candidate := matcher.TrackCandidate(track)
		clone := candidate.Clone()
		result.Matches = append(result.Matches, matcher.Match{File: file, Candidate: &clone})
	}

	e.logger.Info("music matching finished",
		logging.Int("matched", len(result.Matches)),
		logging.Int("unmatched", len(result.Unmatched)))
	return result, nil
}
