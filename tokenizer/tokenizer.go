// Package tokenizer provides size functions for the chunking engine:
// rune and word counters for cheap character budgets, and BPE token
// counters backed by tiktoken encodings for model-accurate budgets.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/sevigo/gochunk/chunker"
)

// DefaultEncoding is used when a model has no known mapping.
const DefaultEncoding = "cl100k_base"

// ErrEncodingUnavailable reports that the requested encoding or model
// mapping could not be resolved.
var ErrEncodingUnavailable = errors.New("tokenizer: encoding unavailable")

// RuneCounter counts Unicode code points.
func RuneCounter(text string) int {
	return utf8.RuneCountInString(text)
}

// WordCounter counts whitespace-separated fields.
func WordCounter(text string) int {
	return len(strings.Fields(text))
}

// NewTiktokenCounter returns a size function counting BPE tokens for the
// named encoding, e.g. "cl100k_base" or "o200k_base".
func NewTiktokenCounter(encoding string) (chunker.SizeFunc, error) {
	tke, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrEncodingUnavailable, encoding, err)
	}
	return counterFor(tke), nil
}

// NewTiktokenCounterForModel resolves the encoding for a model name, e.g.
// "gpt-4o", falling back to DefaultEncoding when the model is unknown.
func NewTiktokenCounterForModel(model string) (chunker.SizeFunc, error) {
	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		tke, err = tiktoken.GetEncoding(DefaultEncoding)
		if err != nil {
			return nil, fmt.Errorf("%w: model %q: %v", ErrEncodingUnavailable, model, err)
		}
	}
	return counterFor(tke), nil
}

func counterFor(tke *tiktoken.Tiktoken) chunker.SizeFunc {
	return func(text string) int {
		return len(tke.Encode(text, nil, nil))
	}
}
