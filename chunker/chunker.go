// Package chunker segments raw text into ordered sequences of chunks with
// exact rune offsets into the original input. Strategies are pure and
// stateless: every Chunk call is an independent transformation of one
// string, so a single chunker value is safe for concurrent use on separate
// inputs.
package chunker

import (
	"context"
	"unicode/utf8"

	"github.com/sevigo/gochunk/schema"
)

// SizeFunc measures a text fragment. It must be deterministic and free of
// side effects; the engine compares its results against configured limits
// and assumes nothing else about its semantics.
type SizeFunc func(text string) int

// RuneCount is the default SizeFunc: the number of Unicode code points.
func RuneCount(text string) int {
	return utf8.RuneCountInString(text)
}

// Chunker is the shared strategy contract: one text in, an ordered chunk
// sequence out. An empty input yields an empty sequence, never an error.
type Chunker interface {
	Chunk(text string) ([]schema.Chunk, error)
}

// TextSplitter processes whole documents through a chunking strategy,
// propagating source metadata onto the resulting documents.
type TextSplitter interface {
	SplitDocuments(ctx context.Context, docs []schema.Document) ([]schema.Document, error)
}

// Strategy tags recorded on chunks via ChunkingStrategyUsed.
const (
	StrategyFixedSize          = "fixed_size"
	StrategyRecursiveCharacter = "recursive_character"
	StrategySentence           = "sentence"
	StrategyStructureAware     = "structure_aware"
)
