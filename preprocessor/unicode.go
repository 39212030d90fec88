package preprocessor

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// UnicodeNormalizer applies one of the four Unicode normalization forms,
// so visually identical strings measure and match identically downstream.
type UnicodeNormalizer struct {
	form norm.Form
}

var _ Step = (*UnicodeNormalizer)(nil)

// NewUnicodeNormalizer creates the step for the named form: NFC, NFD,
// NFKC or NFKD. An empty form selects NFC.
func NewUnicodeNormalizer(form string) (*UnicodeNormalizer, error) {
	if form == "" {
		form = "NFC"
	}
	f, ok := map[string]norm.Form{
		"NFC":  norm.NFC,
		"NFD":  norm.NFD,
		"NFKC": norm.NFKC,
		"NFKD": norm.NFKD,
	}[form]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNormalizationForm, form)
	}
	return &UnicodeNormalizer{form: f}, nil
}

func (n *UnicodeNormalizer) Process(text string) (string, error) {
	return n.form.String(text), nil
}
