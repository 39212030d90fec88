package chunker

import (
	"github.com/google/uuid"

	"github.com/sevigo/gochunk/schema"
)

// linkChunks assigns 0-based sequence numbers and wires the doubly-linked
// neighbor ids in a single pass. The first chunk keeps no previous link and
// the last keeps no next link (uuid.Nil).
func linkChunks(chunks []schema.Chunk) []schema.Chunk {
	for i := range chunks {
		chunks[i].SequenceNumber = i
		chunks[i].PreviousChunkID = uuid.Nil
		chunks[i].NextChunkID = uuid.Nil
	}
	for i := 0; i+1 < len(chunks); i++ {
		chunks[i].NextChunkID = chunks[i+1].ChunkID
		chunks[i+1].PreviousChunkID = chunks[i].ChunkID
	}
	return chunks
}

// finalize runs the runt postprocessor and the linker over a strategy's raw
// output. Every strategy calls it exactly once before returning.
func finalize(chunks []schema.Chunk, o *options) []schema.Chunk {
	chunks = applyRuntPolicy(chunks, o.minimumChunkSize, o.runtPolicy, o.chunkSize, o.sizeFunc)
	return linkChunks(chunks)
}
