// Package preprocessor cleans raw text before it reaches a chunking
// strategy. Steps compose into a pipeline; each step is pure and safe for
// concurrent use.
package preprocessor

import (
	"errors"
	"fmt"
)

// ErrInvalidMaxNewlines reports a negative newline cap.
var ErrInvalidMaxNewlines = errors.New("preprocessor: max consecutive newlines must be non-negative")

// ErrInvalidNormalizationForm reports an unknown Unicode normalization form.
var ErrInvalidNormalizationForm = errors.New("preprocessor: unknown normalization form")

// Step transforms text. Implementations must not mutate shared state.
type Step interface {
	Process(text string) (string, error)
}

// Pipeline applies its steps in order.
type Pipeline struct {
	steps []Step
}

// NewPipeline composes steps into a pipeline. An empty pipeline is valid
// and returns its input unchanged.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Process runs text through every step.
func (p *Pipeline) Process(text string) (string, error) {
	var err error
	for i, step := range p.steps {
		text, err = step.Process(text)
		if err != nil {
			return "", fmt.Errorf("preprocess step %d: %w", i, err)
		}
	}
	return text, nil
}
