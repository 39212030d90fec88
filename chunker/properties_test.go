package chunker_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/gochunk/chunker"
)

var propertyCorpus = []string{
	"The quick brown fox jumps over the lazy dog. It barked! Did it? Yes.",
	"One line.\nAnother line.\n\nA new paragraph with more words in it.",
	"Unicode content: こんにちは、世界！ Grüße aus München. Ça va bien.",
	"word " + strings.Repeat("a", 50) + " word",
	strings.Repeat("repetition. ", 20),
}

func propertyChunkers(t *testing.T) map[string]chunker.Chunker {
	t.Helper()

	fixed, err := chunker.NewFixedSize(chunker.WithChunkSize(16), chunker.WithChunkOverlap(4))
	require.NoError(t, err)
	recursive, err := chunker.NewRecursiveCharacter(chunker.WithChunkSize(24))
	require.NoError(t, err)
	sentences, err := chunker.NewSentence(chunker.WithChunkSize(32))
	require.NoError(t, err)

	return map[string]chunker.Chunker{
		"fixed_size":          fixed,
		"recursive_character": recursive,
		"sentence":            sentences,
	}
}

func TestChunkOffsetsAreOrderedAndBounded(t *testing.T) {
	for name, c := range propertyChunkers(t) {
		t.Run(name, func(t *testing.T) {
			for _, text := range propertyCorpus {
				chunks, err := c.Chunk(text)
				require.NoError(t, err)

				runeLen := len([]rune(text))
				prevStart := -1
				for _, chunk := range chunks {
					assert.NotEmpty(t, chunk.Text)
					assert.Less(t, chunk.StartCharIndex, chunk.EndCharIndex)
					assert.GreaterOrEqual(t, chunk.StartCharIndex, 0)
					assert.LessOrEqual(t, chunk.EndCharIndex, runeLen)
					assert.Greater(t, chunk.StartCharIndex, prevStart)
					prevStart = chunk.StartCharIndex
				}
			}
		})
	}
}

func TestChunkLinksAreConsistent(t *testing.T) {
	for name, c := range propertyChunkers(t) {
		t.Run(name, func(t *testing.T) {
			for _, text := range propertyCorpus {
				chunks, err := c.Chunk(text)
				require.NoError(t, err)

				for i, chunk := range chunks {
					assert.Equal(t, i, chunk.SequenceNumber)
					if i > 0 {
						assert.Equal(t, chunks[i-1].ChunkID, chunk.PreviousChunkID)
					}
					if i < len(chunks)-1 {
						assert.Equal(t, chunks[i+1].ChunkID, chunk.NextChunkID)
					}
				}
			}
		})
	}
}

func TestFixedSizeCoversEveryRune(t *testing.T) {
	c, err := chunker.NewFixedSize(chunker.WithChunkSize(16), chunker.WithChunkOverlap(4))
	require.NoError(t, err)

	for _, text := range propertyCorpus {
		chunks, err := c.Chunk(text)
		require.NoError(t, err)

		covered := make([]bool, len([]rune(text)))
		for _, chunk := range chunks {
			for i := chunk.StartCharIndex; i < chunk.EndCharIndex; i++ {
				covered[i] = true
			}
		}
		for i, ok := range covered {
			assert.True(t, ok, "rune %d not covered", i)
		}
	}
}

func TestFixedSizeChunkTextMatchesOffsets(t *testing.T) {
	c, err := chunker.NewFixedSize(chunker.WithChunkSize(16), chunker.WithChunkOverlap(4))
	require.NoError(t, err)

	for _, text := range propertyCorpus {
		chunks, err := c.Chunk(text)
		require.NoError(t, err)

		runes := []rune(text)
		for _, chunk := range chunks {
			assert.Equal(t, string(runes[chunk.StartCharIndex:chunk.EndCharIndex]), chunk.Text)
		}
	}
}

func TestRecursiveNoOverlapReconstructsText(t *testing.T) {
	// With separators kept and no overlap the chunk texts concatenate back
	// to the input exactly.
	c, err := chunker.NewRecursiveCharacter(
		chunker.WithChunkSize(24),
		chunker.WithKeepSeparator(true),
	)
	require.NoError(t, err)

	for _, text := range propertyCorpus {
		chunks, err := c.Chunk(text)
		require.NoError(t, err)

		var sb strings.Builder
		for _, chunk := range chunks {
			sb.WriteString(chunk.Text)
		}
		assert.Equal(t, text, sb.String())
	}
}

func TestEmptyInputYieldsNoChunksAcrossStrategies(t *testing.T) {
	for name, c := range propertyChunkers(t) {
		t.Run(name, func(t *testing.T) {
			chunks, err := c.Chunk("")
			require.NoError(t, err)
			assert.Empty(t, chunks)
		})
	}
}
