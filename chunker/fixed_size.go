package chunker

import "github.com/sevigo/gochunk/schema"

// FixedSizeChunker slides a window over the text, growing each chunk rune
// by rune until the size function reports the next extension would exceed
// the limit. A single rune whose solo measurement exceeds the limit is an
// oversized atom: it becomes its own one-rune chunk and acts as a hard
// boundary that the window never crosses and never overlaps into.
type FixedSizeChunker struct {
	opts options
}

var _ Chunker = (*FixedSizeChunker)(nil)

// NewFixedSize creates a FixedSizeChunker. Configuration violations
// (non-positive size, negative overlap, overlap >= size) fail here, before
// any chunking occurs.
func NewFixedSize(opts ...Option) (*FixedSizeChunker, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.overlapSentences = 0
	if err := o.validate(); err != nil {
		return nil, err
	}
	return &FixedSizeChunker{opts: o}, nil
}

// Chunk splits text into fixed-size chunks respecting the size function.
func (c *FixedSizeChunker) Chunk(text string) ([]schema.Chunk, error) {
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	total := len(runes)
	sizeFn := c.opts.sizeFunc

	var chunks []schema.Chunk
	start := 0

	for start < total {
		// Pre-scan for the next oversized atom; it bounds the window.
		nextOversized := -1
		for i := start; i < total; i++ {
			if sizeFn(string(runes[i:i+1])) > c.opts.chunkSize {
				nextOversized = i
				break
			}
		}

		limit := total
		if nextOversized != -1 {
			limit = nextOversized
		}

		end := start
		if limit == start {
			// The oversized atom sits at the window start; it is the whole
			// chunk. end = start+1 also guarantees forward progress.
			end = start + 1
		} else {
			for end < limit {
				if sizeFn(string(runes[start:end+1])) > c.opts.chunkSize {
					break
				}
				end++
			}
		}

		chunkText := string(runes[start:end])
		if chunkText == "" {
			break
		}

		chunk := schema.NewChunk(chunkText)
		chunk.StartCharIndex = start
		chunk.EndCharIndex = end
		chunk.TokenCount = sizeFn(chunkText)
		chunk.ChunkingStrategyUsed = StrategyFixedSize
		chunk.SourceDocumentID = c.opts.sourceDocumentID
		chunks = append(chunks, chunk)

		if end == total {
			break
		}

		// No overlap into an oversized-atom window: the next chunk starts
		// exactly at the boundary.
		if nextOversized == end {
			start = end
			continue
		}

		// Scan backward from end while the trailing fragment still fits the
		// overlap budget; the furthest such point becomes the next start.
		overlapStart := end
		for overlapStart > start {
			if sizeFn(string(runes[overlapStart-1:end])) > c.opts.chunkOverlap {
				break
			}
			overlapStart--
		}
		if overlapStart <= start {
			start = end
		} else {
			start = overlapStart
		}
	}

	return finalize(chunks, &c.opts), nil
}
