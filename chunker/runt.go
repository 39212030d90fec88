package chunker

import "github.com/sevigo/gochunk/schema"

// RuntPolicy selects how chunks measuring below the configured minimum
// size are handled after a strategy has produced its sequence.
type RuntPolicy string

const (
	// RuntKeep leaves the sequence unchanged (default).
	RuntKeep RuntPolicy = "keep"
	// RuntDiscard removes undersized chunks from the sequence.
	RuntDiscard RuntPolicy = "discard"
	// RuntMerge folds undersized chunks into their immediate predecessor
	// when the merged size stays within the strategy's chunk size.
	RuntMerge RuntPolicy = "merge"
)

// applyRuntPolicy post-processes a finished chunk sequence according to the
// policy. The merge policy cascades: a merged predecessor that is still a
// runt keeps merging leftwards until it grows past the minimum, reaches the
// front of the sequence, or a merge would exceed the size limit. The merge
// target keeps its own identity; the runt is discarded after its text and
// end offset are absorbed.
func applyRuntPolicy(chunks []schema.Chunk, minSize int, policy RuntPolicy, sizeLimit int, sizeFn SizeFunc) []schema.Chunk {
	if minSize <= 0 || policy == RuntKeep || len(chunks) == 0 {
		return chunks
	}

	switch policy {
	case RuntDiscard:
		kept := chunks[:0]
		for _, c := range chunks {
			if c.TokenCount >= minSize {
				kept = append(kept, c)
			}
		}
		return kept

	case RuntMerge:
		var merged []schema.Chunk
		for _, c := range chunks {
			merged = append(merged, c)
			// Cascade while the newest chunk is a runt with a predecessor
			// it can legally join.
			for len(merged) >= 2 {
				last := merged[len(merged)-1]
				if last.TokenCount >= minSize {
					break
				}
				prev := &merged[len(merged)-2]
				combined := prev.Text + last.Text
				combinedSize := sizeFn(combined)
				if combinedSize > sizeLimit {
					break
				}
				prev.Text = combined
				prev.EndCharIndex = last.EndCharIndex
				prev.TokenCount = combinedSize
				merged = merged[:len(merged)-1]
			}
		}
		return merged
	}

	return chunks
}
