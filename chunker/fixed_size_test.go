package chunker_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/gochunk/chunker"
)

func wordCount(text string) int {
	return len(strings.Split(text, " "))
}

func TestFixedSizeBasic(t *testing.T) {
	c, err := chunker.NewFixedSize(chunker.WithChunkSize(10))
	require.NoError(t, err)

	chunks, err := c.Chunk("This is a test string for basic chunking.")
	require.NoError(t, err)
	require.Len(t, chunks, 5)

	wantTexts := []string{"This is a ", "test strin", "g for basi", "c chunking", "."}
	for i, want := range wantTexts {
		assert.Equal(t, want, chunks[i].Text)
		assert.Equal(t, i*10, chunks[i].StartCharIndex)
		assert.Equal(t, i, chunks[i].SequenceNumber)
	}
	assert.Equal(t, 41, chunks[4].EndCharIndex)
}

func TestFixedSizeWithOverlap(t *testing.T) {
	c, err := chunker.NewFixedSize(chunker.WithChunkSize(10), chunker.WithChunkOverlap(3))
	require.NoError(t, err)

	chunks, err := c.Chunk("abcdefghijklmnopqrstuvwxyz")
	require.NoError(t, err)
	require.Len(t, chunks, 4)

	assert.Equal(t, "abcdefghij", chunks[0].Text)
	assert.Equal(t, "hijklmnopq", chunks[1].Text)
	assert.Equal(t, "opqrstuvwx", chunks[2].Text)
	assert.Equal(t, "vwxyz", chunks[3].Text)

	wantStarts := []int{0, 7, 14, 21}
	for i, want := range wantStarts {
		assert.Equal(t, want, chunks[i].StartCharIndex)
	}
}

func TestFixedSizeEmptyString(t *testing.T) {
	c, err := chunker.NewFixedSize(chunker.WithChunkSize(100), chunker.WithChunkOverlap(10))
	require.NoError(t, err)

	chunks, err := c.Chunk("")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestFixedSizeSmallString(t *testing.T) {
	c, err := chunker.NewFixedSize(chunker.WithChunkSize(10), chunker.WithChunkOverlap(2))
	require.NoError(t, err)

	chunks, err := c.Chunk("short")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].StartCharIndex)
	assert.Equal(t, 5, chunks[0].EndCharIndex)
}

func TestFixedSizeInvalidParams(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		wantErr error
	}{
		{"zero chunk size", 0, 0, chunker.ErrInvalidChunkSize},
		{"negative chunk size", -10, 0, chunker.ErrInvalidChunkSize},
		{"negative overlap", 10, -1, chunker.ErrInvalidChunkOverlap},
		{"overlap equals size", 10, 10, chunker.ErrInvalidChunkOverlap},
		{"overlap above size", 10, 11, chunker.ErrInvalidChunkOverlap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := chunker.NewFixedSize(
				chunker.WithChunkSize(tt.size),
				chunker.WithChunkOverlap(tt.overlap),
			)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFixedSizeMetadata(t *testing.T) {
	text := "Testing metadata population."
	c, err := chunker.NewFixedSize(chunker.WithChunkSize(8), chunker.WithChunkOverlap(2))
	require.NoError(t, err)

	chunks, err := c.Chunk(text)
	require.NoError(t, err)
	require.Len(t, chunks, 5)

	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.SequenceNumber)
		assert.Equal(t, chunker.StrategyFixedSize, chunk.ChunkingStrategyUsed)
		wantStart := i * (8 - 2)
		assert.Equal(t, wantStart, chunk.StartCharIndex)
		wantEnd := wantStart + 8
		if wantEnd > len(text) {
			wantEnd = len(text)
		}
		assert.Equal(t, wantEnd, chunk.EndCharIndex)
		assert.Equal(t, len(chunk.Text), chunk.TokenCount)
	}
}

func TestFixedSizeUnicode(t *testing.T) {
	c, err := chunker.NewFixedSize(chunker.WithChunkSize(5), chunker.WithChunkOverlap(1))
	require.NoError(t, err)

	chunks, err := c.Chunk("こんにちは、世界！")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "こんにちは", chunks[0].Text)
	assert.Equal(t, "は、世界！", chunks[1].Text)
	assert.Equal(t, 0, chunks[0].StartCharIndex)
	assert.Equal(t, 4, chunks[1].StartCharIndex)
	assert.Equal(t, 9, chunks[1].EndCharIndex)
}

func TestFixedSizePerfectFit(t *testing.T) {
	c, err := chunker.NewFixedSize(chunker.WithChunkSize(5))
	require.NoError(t, err)

	chunks, err := c.Chunk("1234567890")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "12345", chunks[0].Text)
	assert.Equal(t, "67890", chunks[1].Text)
}

func TestFixedSizeWhitespaceOnly(t *testing.T) {
	c, err := chunker.NewFixedSize(chunker.WithChunkSize(3), chunker.WithChunkOverlap(1))
	require.NoError(t, err)

	chunks, err := c.Chunk(strings.Repeat(" ", 10))
	require.NoError(t, err)
	require.Len(t, chunks, 5)
	for _, chunk := range chunks[:4] {
		assert.Equal(t, "   ", chunk.Text)
	}
	assert.Equal(t, "  ", chunks[4].Text)
}

func TestFixedSizeCustomSizeFunc(t *testing.T) {
	text := "one two three four five six seven eight nine ten eleven"
	c, err := chunker.NewFixedSize(
		chunker.WithChunkSize(3),
		chunker.WithChunkOverlap(1),
		chunker.WithSizeFunc(wordCount),
	)
	require.NoError(t, err)

	chunks, err := c.Chunk(text)
	require.NoError(t, err)
	require.Len(t, chunks, 5)

	wantTexts := []string{
		"one two three",
		"three four five",
		"five six seven",
		"seven eight nine",
		"nine ten eleven",
	}
	for i, want := range wantTexts {
		assert.Equal(t, want, chunks[i].Text)
		assert.Equal(t, 3, wordCount(chunks[i].Text))
	}

	assert.Equal(t, 0, chunks[0].StartCharIndex)
	assert.Equal(t, 13, chunks[0].EndCharIndex)
	assert.Equal(t, 8, chunks[1].StartCharIndex)
	assert.Equal(t, 23, chunks[1].EndCharIndex)
}

func TestFixedSizeOversizedAtom(t *testing.T) {
	sizeFn := func(text string) int {
		if strings.Contains(text, "X") {
			return 100
		}
		return len(text)
	}

	c, err := chunker.NewFixedSize(
		chunker.WithChunkSize(10),
		chunker.WithChunkOverlap(2),
		chunker.WithSizeFunc(sizeFn),
	)
	require.NoError(t, err)

	chunks, err := c.Chunk("abcXdef")
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "abc", chunks[0].Text)
	assert.Equal(t, "X", chunks[1].Text)
	assert.Equal(t, "def", chunks[2].Text)
}

func TestFixedSizeOverlapLargerThanChunkContent(t *testing.T) {
	sizeFn := func(text string) int {
		if strings.Contains(text, "X") {
			return 100
		}
		return len(text)
	}

	// The first chunk is "abc" because X is oversized; the configured
	// overlap of 4 exceeds its length, so the next window must start right
	// at the boundary instead of overlapping.
	c, err := chunker.NewFixedSize(
		chunker.WithChunkSize(5),
		chunker.WithChunkOverlap(4),
		chunker.WithSizeFunc(sizeFn),
	)
	require.NoError(t, err)

	chunks, err := c.Chunk("abcXde")
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "abc", chunks[0].Text)
	assert.Equal(t, "X", chunks[1].Text)
	assert.Equal(t, "de", chunks[2].Text)
}

func TestFixedSizeChunkSmallerThanOverlapScan(t *testing.T) {
	sizeFn := func(text string) int {
		if strings.Contains(text, "X") {
			return 100
		}
		return len(text)
	}

	c, err := chunker.NewFixedSize(
		chunker.WithChunkSize(10),
		chunker.WithChunkOverlap(5),
		chunker.WithSizeFunc(sizeFn),
	)
	require.NoError(t, err)

	chunks, err := c.Chunk("abcdXefg")
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "abcd", chunks[0].Text)
	assert.Equal(t, "X", chunks[1].Text)
	assert.Equal(t, "efg", chunks[2].Text)
}
