package media

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Kind classifies a media file by its extension.
type Kind int

const (
	KindOther Kind = iota
	KindVideo
	KindSubtitle
	KindAudio
	KindNFO
	KindArchive
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindSubtitle:
		return "subtitle"
	case KindAudio:
		return "audio"
	case KindNFO:
		return "nfo"
	case KindArchive:
		return "archive"
	default:
		return "other"
	}
}

var kindByExt = map[string]Kind{
	"mkv": KindVideo, "mp4": KindVideo, "avi": KindVideo, "m4v": KindVideo,
	"mov": KindVideo, "wmv": KindVideo, "mpg": KindVideo, "mpeg": KindVideo,
	"ts": KindVideo, "webm": KindVideo, "divx": KindVideo, "ogm": KindVideo,

	"srt": KindSubtitle, "sub": KindSubtitle, "ssa": KindSubtitle,
	"ass": KindSubtitle, "smi": KindSubtitle, "vtt": KindSubtitle,

	"mp3": KindAudio, "flac": KindAudio, "m4a": KindAudio, "ogg": KindAudio,
	"oga": KindAudio, "wav": KindAudio, "aac": KindAudio, "wma": KindAudio,
	"opus": KindAudio,

	"nfo": KindNFO,

	"zip": KindArchive, "rar": KindArchive, "7z": KindArchive,
	"tar": KindArchive, "gz": KindArchive,
}

// File describes a single discovered media file. Identity is the path;
// values are immutable once constructed.
type File struct {
	Path string
	Dir  string
	Name string // base name without extension
	Ext  string // lowercased, without leading dot
	Kind Kind
}

// NewFile builds a File from a path without touching the filesystem.
func NewFile(path string) File {
	base := filepath.Base(path)
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	name := strings.TrimSuffix(base, filepath.Ext(base))
	lowered := strings.ToLower(ext)
	return File{
		Path: path,
		Dir:  filepath.Dir(path),
		Name: name,
		Ext:  lowered,
		Kind: kindByExt[lowered],
	}
}

// ScanPaths expands the given paths into a flat file list. Directories are
// walked recursively; hidden entries are skipped. The result order is
// deterministic: argument order first, lexical order within each directory.
func ScanPaths(paths []string) ([]File, error) {
	var files []File
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve path %s: %w", path, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, NewFile(abs))
			continue
		}
		err = filepath.WalkDir(abs, func(entry string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if strings.HasPrefix(d.Name(), ".") && entry != abs {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() {
				files = append(files, NewFile(entry))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", path, err)
		}
	}
	return files, nil
}

// Filter returns the files whose kind is one of the given kinds, preserving
// input order.
func Filter(files []File, kinds ...Kind) []File {
	var out []File
	for _, f := range files {
		for _, k := range kinds {
			if f.Kind == k {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// GroupByDir maps files to their parent directory, preserving input order
// within each group. Keys are returned sorted for deterministic iteration.
func GroupByDir(files []File) (map[string][]File, []string) {
	byDir := make(map[string][]File)
	for _, f := range files {
		byDir[f.Dir] = append(byDir[f.Dir], f)
	}
	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return byDir, dirs
}
