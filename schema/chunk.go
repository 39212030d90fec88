package schema

import (
	"github.com/google/uuid"
)

// Chunk is one unit of segmented output text. Offsets are half-open
// [StartCharIndex, EndCharIndex) rune indices into the original, unmodified
// input string. Link fields hold uuid.Nil until the linker pass assigns them.
type Chunk struct {
	// Text is the exact (or merged) substring assigned to this chunk.
	Text string

	// TextForEmbedding optionally carries an alternative rendering of Text
	// for embedding pipelines. Empty means "use Text".
	TextForEmbedding string

	ChunkID          uuid.UUID
	SourceDocumentID string

	PreviousChunkID uuid.UUID
	NextChunkID     uuid.UUID
	ParentChunkID   uuid.UUID

	StartCharIndex int
	EndCharIndex   int

	// SequenceNumber is the 0-based position in the final, post-processed
	// sequence.
	SequenceNumber int

	// TokenCount is the configured size function's measurement of Text.
	TokenCount int

	ContentType          string
	ChunkingStrategyUsed string

	HierarchicalContext map[string]string
	Metadata            map[string]any
}

// NewChunk creates a chunk with a fresh unique id and independently owned
// metadata maps. Every call allocates new maps; chunks never share them.
func NewChunk(text string) Chunk {
	return Chunk{
		Text:                 text,
		ChunkID:              uuid.New(),
		ContentType:          "text",
		ChunkingStrategyUsed: "unknown",
		HierarchicalContext:  make(map[string]string),
		Metadata:             make(map[string]any),
	}
}
