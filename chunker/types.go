package chunker

import "errors"

// Configuration errors. All of them surface at construction time; a
// successfully constructed chunker never fails on configuration mid-chunk.
var (
	ErrInvalidChunkSize        = errors.New("chunk_size must be a positive integer")
	ErrInvalidChunkOverlap     = errors.New("chunk_overlap must be a non-negative integer smaller than chunk_size")
	ErrInvalidOverlapSentences = errors.New("overlap_sentences must be a non-negative integer")
	ErrInvalidMinimumChunkSize = errors.New("minimum_chunk_size must be a non-negative integer")
	ErrUnknownRuntPolicy       = errors.New("unknown runt handling policy")
	ErrParserRequired          = errors.New("structure-aware chunking requires an IDR parser")
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 0
)

// DefaultSeparators is the escalating separator list for the recursive
// character strategy: paragraph, line, sentence punctuation, word, rune.
var DefaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}
