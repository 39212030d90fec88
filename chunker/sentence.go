package chunker

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sevigo/gochunk/schema"
)

// sentenceBoundary matches a candidate sentence terminator: a run of
// terminal punctuation, optionally followed by a closing quote or bracket,
// then whitespace. RE2 has no lookbehind, so abbreviation suppression
// happens separately by inspecting the token in front of each candidate.
// The first group ends the sentence; the whitespace group starts the next.
var sentenceBoundary = regexp.MustCompile(`([.!?]+["')\]]*)(\s+)`)

// abbreviations whose trailing period does not terminate a sentence. The
// single-letter rule (U.S., D.C., middle initials) is handled structurally,
// this set covers multi-letter titles and latinisms. Heuristic by nature:
// quotation and rare-abbreviation edge cases will misclassify.
var abbreviations = map[string]struct{}{
	"dr": {}, "mr": {}, "mrs": {}, "ms": {}, "prof": {}, "rev": {},
	"sr": {}, "jr": {}, "st": {}, "vs": {}, "etc": {}, "fig": {},
	"al": {}, "inc": {}, "ltd": {}, "col": {}, "gen": {},
}

// sentence is an ephemeral segment with trimmed original-text rune offsets.
type sentence struct {
	text  string
	start int
	end   int
}

// SentenceChunker segments text into sentences with a boundary heuristic,
// then greedily merges whole sentences into size-bounded chunks. Overlap is
// either size-based or a fixed count of trailing sentences; the sentence
// count, when set, takes precedence. Joined chunk text uses a single space
// between sentences while offsets keep referencing the original span.
type SentenceChunker struct {
	opts options
}

var _ Chunker = (*SentenceChunker)(nil)

// NewSentence creates a SentenceChunker. With a positive overlap-sentence
// count the overlap-smaller-than-size requirement is waived, since the
// overlap is bounded by sentence count instead of size.
func NewSentence(opts ...Option) (*SentenceChunker, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return &SentenceChunker{opts: o}, nil
}

// Chunk segments text into sentences and merges them into chunks.
func (c *SentenceChunker) Chunk(text string) ([]schema.Chunk, error) {
	if text == "" {
		return nil, nil
	}

	sentences := segmentSentences(text)
	if len(sentences) == 0 {
		return nil, nil
	}

	chunks := c.mergeSentences(sentences)
	return finalize(chunks, &c.opts), nil
}

// segmentSentences finds sentence spans with trimmed rune offsets into the
// original text.
func segmentSentences(text string) []sentence {
	// regexp reports byte offsets; precompute the byte-to-rune mapping once.
	byteToRune := make(map[int]int, len(text)+1)
	runeIdx := 0
	for byteIdx := range text {
		byteToRune[byteIdx] = runeIdx
		runeIdx++
	}
	byteToRune[len(text)] = runeIdx

	var sentences []sentence
	segStart := 0 // byte offset of the current sentence start

	for _, m := range sentenceBoundary.FindAllStringSubmatchIndex(text, -1) {
		terminatorEnd := m[3] // end of the punctuation(+quote) group
		nextStart := m[5]     // end of the whitespace group
		if isAbbreviationBoundary(text, segStart, m[2], m[3]) {
			continue
		}
		if s, ok := trimSpan(text, segStart, terminatorEnd, byteToRune); ok {
			sentences = append(sentences, s)
		}
		segStart = nextStart
	}

	if s, ok := trimSpan(text, segStart, len(text), byteToRune); ok {
		sentences = append(sentences, s)
	}
	return sentences
}

// isAbbreviationBoundary reports whether the candidate terminator at byte
// range [termStart, termEnd) follows an abbreviation and should therefore
// not end a sentence. Only plain periods are suppressed; ? and ! always
// terminate.
func isAbbreviationBoundary(text string, segStart, termStart, termEnd int) bool {
	if strings.ContainsAny(text[termStart:termEnd], "!?") {
		return false
	}

	// Token immediately in front of the period, e.g. "Dr", "U.S.A" -> "A".
	wordStart := termStart
	for wordStart > segStart {
		r, size := utf8.DecodeLastRuneInString(text[:wordStart])
		if unicode.IsSpace(r) {
			break
		}
		wordStart -= size
	}
	token := strings.TrimRight(text[wordStart:termStart], ".")
	if token == "" {
		return false
	}

	if idx := strings.LastIndex(token, "."); idx >= 0 {
		// Dotted token: judge by its final segment, so "U.S.A" -> "A".
		token = token[idx+1:]
	}
	if utf8.RuneCountInString(token) == 1 && token != "I" {
		return true
	}
	_, known := abbreviations[strings.ToLower(token)]
	return known
}

// trimSpan strips incidental leading/trailing whitespace from the byte span
// and converts it to a rune-offset sentence. Empty spans report ok=false.
func trimSpan(text string, start, end int, byteToRune map[int]int) (sentence, bool) {
	for start < end {
		r, size := utf8.DecodeRuneInString(text[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		start += size
	}
	for end > start {
		r, size := utf8.DecodeLastRuneInString(text[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		end -= size
	}
	if start >= end {
		return sentence{}, false
	}
	return sentence{
		text:  text[start:end],
		start: byteToRune[start],
		end:   byteToRune[end],
	}, true
}

// mergeSentences packs sentences into chunks per the ordered policy:
// an oversized sentence flushes the accumulation and stands alone; a
// sentence that would overflow the accumulation flushes it, seeds the next
// chunk with overlap, and — if even the seed plus sentence does not fit —
// is emitted standalone so no sentence is ever dropped.
func (c *SentenceChunker) mergeSentences(sentences []sentence) []schema.Chunk {
	var chunks []schema.Chunk
	var acc []sentence

	flush := func() {
		if len(acc) > 0 {
			chunks = append(chunks, c.buildChunk(acc))
			acc = nil
		}
	}

	for _, s := range sentences {
		if c.opts.sizeFunc(s.text) > c.opts.chunkSize {
			flush()
			chunks = append(chunks, c.buildChunk([]sentence{s}))
			continue
		}

		if len(acc) > 0 && c.opts.sizeFunc(joinSentences(append(acc[:len(acc):len(acc)], s))) > c.opts.chunkSize {
			chunks = append(chunks, c.buildChunk(acc))

			seed := c.overlapSentenceSeed(acc)
			candidate := append(seed[:len(seed):len(seed)], s)
			if c.opts.sizeFunc(joinSentences(candidate)) > c.opts.chunkSize {
				chunks = append(chunks, c.buildChunk([]sentence{s}))
				acc = nil
				continue
			}
			acc = candidate
			continue
		}

		acc = append(acc, s)
	}

	flush()
	return chunks
}

// overlapSentenceSeed selects the trailing sentences that seed the next
// chunk. A positive overlap-sentence count wins over size-based overlap.
func (c *SentenceChunker) overlapSentenceSeed(acc []sentence) []sentence {
	if c.opts.overlapSentences > 0 {
		n := c.opts.overlapSentences
		if n > len(acc) {
			n = len(acc)
		}
		seed := make([]sentence, n)
		copy(seed, acc[len(acc)-n:])
		return seed
	}

	if c.opts.chunkOverlap <= 0 {
		return nil
	}
	cut := len(acc)
	for cut > 0 {
		suffix := acc[cut-1:]
		if c.opts.sizeFunc(joinSentences(suffix)) > c.opts.chunkOverlap {
			break
		}
		cut--
	}
	seed := make([]sentence, len(acc)-cut)
	copy(seed, acc[cut:])
	return seed
}

func joinSentences(sentences []sentence) string {
	parts := make([]string, len(sentences))
	for i, s := range sentences {
		parts[i] = s.text
	}
	return strings.Join(parts, " ")
}

func (c *SentenceChunker) buildChunk(acc []sentence) schema.Chunk {
	text := joinSentences(acc)
	chunk := schema.NewChunk(text)
	chunk.StartCharIndex = acc[0].start
	chunk.EndCharIndex = acc[len(acc)-1].end
	chunk.TokenCount = c.opts.sizeFunc(text)
	chunk.ChunkingStrategyUsed = StrategySentence
	chunk.SourceDocumentID = c.opts.sourceDocumentID
	return chunk
}
