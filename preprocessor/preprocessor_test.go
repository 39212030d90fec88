package preprocessor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/gochunk/preprocessor"
)

func TestWhitespaceNormalizer(t *testing.T) {
	tests := []struct {
		name        string
		maxNewlines int
		in          string
		want        string
	}{
		{
			name:        "collapses spaces and tabs",
			maxNewlines: 2,
			in:          "hello   world\tfoo \t bar",
			want:        "hello world foo bar",
		},
		{
			name:        "caps newline runs",
			maxNewlines: 2,
			in:          "para one\n\n\n\n\npara two",
			want:        "para one\n\npara two",
		},
		{
			name:        "keeps runs within the cap",
			maxNewlines: 3,
			in:          "a\n\nb",
			want:        "a\n\nb",
		},
		{
			name:        "zero cap flattens to one line",
			maxNewlines: 0,
			in:          "line one\nline two\n\nline three",
			want:        "line one line two line three",
		},
		{
			name:        "trims ends",
			maxNewlines: 1,
			in:          "  \n text \n  ",
			want:        "text",
		},
		{
			name:        "folds CRLF",
			maxNewlines: 1,
			in:          "a\r\nb\rc",
			want:        "a\nb\nc",
		},
		{
			name:        "drops spaces around newlines",
			maxNewlines: 2,
			in:          "a  \n  b",
			want:        "a\nb",
		},
		{
			name:        "empty input",
			maxNewlines: 2,
			in:          "",
			want:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := preprocessor.NewWhitespaceNormalizer(tt.maxNewlines)
			require.NoError(t, err)

			got, err := n.Process(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWhitespaceNormalizerRejectsNegativeCap(t *testing.T) {
	_, err := preprocessor.NewWhitespaceNormalizer(-1)
	assert.ErrorIs(t, err, preprocessor.ErrInvalidMaxNewlines)
}

func TestUnicodeNormalizer(t *testing.T) {
	// e + combining acute composes to the precomposed form under NFC.
	decomposed := "é"
	composed := "é"

	nfc, err := preprocessor.NewUnicodeNormalizer("NFC")
	require.NoError(t, err)
	got, err := nfc.Process(decomposed)
	require.NoError(t, err)
	assert.Equal(t, composed, got)

	nfd, err := preprocessor.NewUnicodeNormalizer("NFD")
	require.NoError(t, err)
	got, err = nfd.Process(composed)
	require.NoError(t, err)
	assert.Equal(t, decomposed, got)

	// NFKC folds compatibility characters like the ligature ﬁ.
	nfkc, err := preprocessor.NewUnicodeNormalizer("NFKC")
	require.NoError(t, err)
	got, err = nfkc.Process("ﬁle")
	require.NoError(t, err)
	assert.Equal(t, "file", got)
}

func TestUnicodeNormalizerDefaultsToNFC(t *testing.T) {
	n, err := preprocessor.NewUnicodeNormalizer("")
	require.NoError(t, err)
	got, err := n.Process("é")
	require.NoError(t, err)
	assert.Equal(t, "é", got)
}

func TestUnicodeNormalizerRejectsUnknownForm(t *testing.T) {
	_, err := preprocessor.NewUnicodeNormalizer("NFX")
	assert.ErrorIs(t, err, preprocessor.ErrInvalidNormalizationForm)
}

type failingStep struct{}

func (failingStep) Process(string) (string, error) {
	return "", errors.New("step failed")
}

func TestPipeline(t *testing.T) {
	ws, err := preprocessor.NewWhitespaceNormalizer(1)
	require.NoError(t, err)
	nfc, err := preprocessor.NewUnicodeNormalizer("NFC")
	require.NoError(t, err)

	p := preprocessor.NewPipeline(nfc, ws)
	got, err := p.Process("  café   menu \n\n\n end  ")
	require.NoError(t, err)
	assert.Equal(t, "café menu\nend", got)
}

func TestPipelineEmpty(t *testing.T) {
	got, err := preprocessor.NewPipeline().Process("unchanged  text")
	require.NoError(t, err)
	assert.Equal(t, "unchanged  text", got)
}

func TestPipelinePropagatesStepError(t *testing.T) {
	p := preprocessor.NewPipeline(failingStep{})
	_, err := p.Process("anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preprocess step 0")
}
