// Package textutil provides text normalization and similarity scoring
// for noisy media file names.
package textutil
