package chunker

// options holds the configuration shared by all strategies. Values are
// recorded verbatim; constructors validate them and reject bad ones, so a
// chunker that exists is a chunker that is correctly configured.
type options struct {
	chunkSize        int
	chunkOverlap     int
	sizeFunc         SizeFunc
	separators       []string
	keepSeparator    bool
	overlapSentences int
	minimumChunkSize int
	runtPolicy       RuntPolicy
	sourceDocumentID string
}

// Option is a function type for configuring a strategy at construction.
type Option func(*options)

func defaultOptions() options {
	return options{
		chunkSize:     defaultChunkSize,
		chunkOverlap:  defaultChunkOverlap,
		sizeFunc:      RuneCount,
		separators:    DefaultSeparators,
		keepSeparator: true,
		runtPolicy:    RuntKeep,
	}
}

// WithChunkSize sets the maximum chunk size as measured by the size
// function. Must be positive.
func WithChunkSize(size int) Option {
	return func(o *options) { o.chunkSize = size }
}

// WithChunkOverlap sets the desired overlap between consecutive chunks,
// measured by the size function.
func WithChunkOverlap(overlap int) Option {
	return func(o *options) { o.chunkOverlap = overlap }
}

// WithSizeFunc sets the size measurement function. The default counts
// runes.
func WithSizeFunc(fn SizeFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.sizeFunc = fn
		}
	}
}

// WithSeparators sets the ordered separator list for the recursive
// character strategy. The empty string is the terminal per-rune marker and
// is appended implicitly when absent.
func WithSeparators(separators []string) Option {
	return func(o *options) { o.separators = separators }
}

// WithKeepSeparator controls whether each fragment retains the separator
// that follows it (default true).
func WithKeepSeparator(keep bool) Option {
	return func(o *options) { o.keepSeparator = keep }
}

// WithOverlapSentences sets sentence-count overlap for the sentence
// strategy. When positive it takes precedence over size-based overlap.
func WithOverlapSentences(n int) Option {
	return func(o *options) { o.overlapSentences = n }
}

// WithMinimumChunkSize sets the runt threshold: chunks measuring below it
// are subject to the configured runt policy.
func WithMinimumChunkSize(size int) Option {
	return func(o *options) { o.minimumChunkSize = size }
}

// WithRuntPolicy sets how undersized chunks are handled (keep, discard or
// merge).
func WithRuntPolicy(policy RuntPolicy) Option {
	return func(o *options) { o.runtPolicy = policy }
}

// WithSourceDocumentID stamps every produced chunk with the originating
// document's id.
func WithSourceDocumentID(id string) Option {
	return func(o *options) { o.sourceDocumentID = id }
}

// validate applies the construction-time configuration checks shared by
// every strategy.
func (o *options) validate() error {
	if o.chunkSize <= 0 {
		return ErrInvalidChunkSize
	}
	if o.chunkOverlap < 0 {
		return ErrInvalidChunkOverlap
	}
	if o.overlapSentences < 0 {
		return ErrInvalidOverlapSentences
	}
	// Sentence-count overlap is independently bounded and bypasses the
	// size-based overlap requirement.
	if o.overlapSentences == 0 && o.chunkOverlap >= o.chunkSize {
		return ErrInvalidChunkOverlap
	}
	if o.minimumChunkSize < 0 {
		return ErrInvalidMinimumChunkSize
	}
	switch o.runtPolicy {
	case RuntKeep, RuntDiscard, RuntMerge:
	default:
		return ErrUnknownRuntPolicy
	}
	return nil
}
