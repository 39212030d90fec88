package preprocessor

import (
	"regexp"
	"strings"
)

var (
	spaceRun       = regexp.MustCompile(`[ \t]+`)
	newlineSpacing = regexp.MustCompile(`[ \t]*\n[ \t]*`)
	newlineRun     = regexp.MustCompile(`\n+`)
)

// WhitespaceNormalizer collapses horizontal whitespace runs to a single
// space, caps consecutive newlines, and trims the ends. A cap of zero
// flattens the text onto one line.
type WhitespaceNormalizer struct {
	maxNewlines int
}

var _ Step = (*WhitespaceNormalizer)(nil)

// NewWhitespaceNormalizer creates the step. maxNewlines bounds how many
// consecutive newlines survive; zero replaces newlines with spaces.
func NewWhitespaceNormalizer(maxNewlines int) (*WhitespaceNormalizer, error) {
	if maxNewlines < 0 {
		return nil, ErrInvalidMaxNewlines
	}
	return &WhitespaceNormalizer{maxNewlines: maxNewlines}, nil
}

func (n *WhitespaceNormalizer) Process(text string) (string, error) {
	// Fold Windows and old-Mac line endings first.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = newlineSpacing.ReplaceAllString(text, "\n")
	text = spaceRun.ReplaceAllString(text, " ")

	if n.maxNewlines == 0 {
		text = newlineRun.ReplaceAllString(text, " ")
	} else {
		capped := strings.Repeat("\n", n.maxNewlines)
		text = newlineRun.ReplaceAllStringFunc(text, func(run string) string {
			if len(run) > n.maxNewlines {
				return capped
			}
			return run
		})
	}

	return strings.TrimSpace(text), nil
}
