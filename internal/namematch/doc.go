// Package namematch infers series names from batches of file names using
// common-word-sequence detection, and classifies mixed batches as episode or
// movie oriented.
package namematch
