// Package media models local media files: kind classification by extension,
// release-name cleanup, episode numbering extraction, and the filename
// derivation predicate that ties subtitles and NFO files to their primary
// video file.
package media
