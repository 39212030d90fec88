package chunker

import (
	"strings"

	"github.com/sevigo/gochunk/schema"
)

// RecursiveCharacterChunker splits text hierarchically over an ordered
// separator list, then greedily merges the fragments back into size-bounded
// chunks. A fragment that is still oversized after one level is re-split
// with the remaining separators; the empty-string separator is the terminal
// per-rune fallback, implicitly appended when a custom list omits it. Each
// recursion level strictly narrows the separator list, which makes
// termination structural: even a pathological size function that reports an
// empty fragment as oversized cannot recurse, because empty fragments are
// discarded before re-splitting.
type RecursiveCharacterChunker struct {
	opts options
}

var _ Chunker = (*RecursiveCharacterChunker)(nil)

// NewRecursiveCharacter creates a RecursiveCharacterChunker. Configuration
// violations fail here, before any chunking occurs.
func NewRecursiveCharacter(opts ...Option) (*RecursiveCharacterChunker, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.overlapSentences = 0
	if err := o.validate(); err != nil {
		return nil, err
	}
	return &RecursiveCharacterChunker{opts: o}, nil
}

// Chunk splits text on the configured separators and merges the fragments
// into chunks no larger than the chunk size.
func (c *RecursiveCharacterChunker) Chunk(text string) ([]schema.Chunk, error) {
	if text == "" {
		return nil, nil
	}

	whole := split{text: text, start: 0, end: RuneCount(text)}
	if c.opts.sizeFunc(text) <= c.opts.chunkSize {
		chunk := c.buildChunk([]split{whole})
		return finalize([]schema.Chunk{chunk}, &c.opts), nil
	}

	fragments := c.splitRecursive(whole, c.opts.separators)
	chunks := c.mergeFragments(fragments)
	return finalize(chunks, &c.opts), nil
}

// splitRecursive decomposes a fragment with the first separator and
// re-splits any still-oversized piece using the remaining list.
func (c *RecursiveCharacterChunker) splitRecursive(frag split, separators []string) []split {
	separator := ""
	var remaining []string
	if len(separators) > 0 {
		separator = separators[0]
		remaining = separators[1:]
	}

	var parts []split
	if separator == "" {
		parts = splitByRune(frag)
	} else {
		parts = splitBySeparator(frag, separator, c.opts.keepSeparator)
	}

	var out []split
	for _, part := range parts {
		// An empty fragment carries no text and is never re-split, whatever
		// a custom size function claims its size to be.
		if part.text == "" {
			continue
		}
		if separator != "" && c.opts.sizeFunc(part.text) > c.opts.chunkSize {
			out = append(out, c.splitRecursive(part, remaining)...)
			continue
		}
		out = append(out, part)
	}
	return out
}

// mergeFragments accumulates fragments left-to-right while the running size
// stays within the chunk size. On overflow the accumulation is emitted and
// a backward-scanned suffix of it seeds the next chunk as overlap; a seed
// that cannot fit together with the incoming fragment is dropped entirely
// so the fragment itself is never lost.
func (c *RecursiveCharacterChunker) mergeFragments(fragments []split) []schema.Chunk {
	var chunks []schema.Chunk
	var acc []split
	accSize := 0

	for _, frag := range fragments {
		fragSize := c.opts.sizeFunc(frag.text)

		if len(acc) > 0 && accSize+fragSize > c.opts.chunkSize {
			chunks = append(chunks, c.buildChunk(acc))

			seed, seedSize := c.overlapSeed(acc)
			if seedSize+fragSize > c.opts.chunkSize {
				seed, seedSize = nil, 0
			}
			acc = append(seed, frag)
			accSize = seedSize + fragSize
			continue
		}

		acc = append(acc, frag)
		accSize += fragSize
	}

	if len(acc) > 0 {
		chunks = append(chunks, c.buildChunk(acc))
	}
	return chunks
}

// overlapSeed scans backward over the just-emitted fragments while the
// suffix size stays within the overlap budget.
func (c *RecursiveCharacterChunker) overlapSeed(acc []split) ([]split, int) {
	if c.opts.chunkOverlap <= 0 {
		return nil, 0
	}
	seedSize := 0
	cut := len(acc)
	for cut > 0 {
		s := c.opts.sizeFunc(acc[cut-1].text)
		if seedSize+s > c.opts.chunkOverlap {
			break
		}
		seedSize += s
		cut--
	}
	seed := make([]split, len(acc)-cut)
	copy(seed, acc[cut:])
	return seed, seedSize
}

func (c *RecursiveCharacterChunker) buildChunk(acc []split) schema.Chunk {
	var sb strings.Builder
	for _, frag := range acc {
		sb.WriteString(frag.text)
	}
	text := sb.String()

	chunk := schema.NewChunk(text)
	chunk.StartCharIndex = acc[0].start
	chunk.EndCharIndex = acc[len(acc)-1].end
	chunk.TokenCount = c.opts.sizeFunc(text)
	chunk.ChunkingStrategyUsed = StrategyRecursiveCharacter
	chunk.SourceDocumentID = c.opts.sourceDocumentID
	return chunk
}
