package chunker

// split is an ephemeral fragment produced during separator-based
// decomposition: its text plus half-open rune offsets into the original
// input. Splits are consumed by the merge pass and discarded once chunks
// are built.
type split struct {
	text  string
	start int
	end   int
}

// splitBySeparator cuts the fragment on every occurrence of the literal
// separator, preserving original-text offsets. With keep set, each
// fragment retains the separator that follows it; otherwise separators are
// dropped and offsets adjusted accordingly. Empty fragments (adjacent or
// trailing separators) are produced and filtered by the caller.
func splitBySeparator(frag split, separator string, keep bool) []split {
	runes := []rune(frag.text)
	sep := []rune(separator)
	if len(sep) == 0 || len(sep) > len(runes) {
		return []split{frag}
	}

	var parts []split
	segStart := 0
	i := 0
	for i+len(sep) <= len(runes) {
		if string(runes[i:i+len(sep)]) != separator {
			i++
			continue
		}
		end := i
		if keep {
			end = i + len(sep)
		}
		parts = append(parts, split{
			text:  string(runes[segStart:end]),
			start: frag.start + segStart,
			end:   frag.start + end,
		})
		i += len(sep)
		segStart = i
	}
	parts = append(parts, split{
		text:  string(runes[segStart:]),
		start: frag.start + segStart,
		end:   frag.start + len(runes),
	})
	return parts
}

// splitByRune is the terminal fallback: every rune becomes its own
// fragment. It always makes progress, so splitting terminates even when no
// separator matches anything.
func splitByRune(frag split) []split {
	runes := []rune(frag.text)
	parts := make([]split, 0, len(runes))
	for i, r := range runes {
		parts = append(parts, split{
			text:  string(r),
			start: frag.start + i,
			end:   frag.start + i + 1,
		})
	}
	return parts
}
