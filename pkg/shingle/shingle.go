// Package shingle extracts fixed-size overlapping windows ("shingles") from
// text, the raw material MinHash signatures are built from.
package shingle

import (
	"errors"
	"iter"
	"strings"
)

// Mode selects the unit a shingle window slides over.
type Mode int

// Supported shingle modes.
const (
	// Char slides a window of n_gram characters (code points), step 1.
	Char Mode = iota
	// Term splits on whitespace and slides a window of n_gram terms, step 1.
	Term
)

// String renders m the way external configuration spells it.
func (m Mode) String() string {
	if m == Term {
		return "term"
	}

	return "char"
}

// ParseMode parses the external spelling of a shingle mode ("char" or
// "term"). Any other value is ErrInvalidNGramType.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "char":
		return Char, nil
	case "term":
		return Term, nil
	default:
		return 0, ErrInvalidNGramType
	}
}

// Sentinel errors for shingle extraction.
var (
	// ErrInvalidShingleSize is returned when n_gram exceeds the number of
	// units (characters or terms) in the text, or the text is empty, so the
	// resulting shingle sequence would be empty.
	ErrInvalidShingleSize = errors.New("shingle: n_gram must not exceed input length")

	// ErrInvalidNGramType is returned for a mode outside {char, term}.
	ErrInvalidNGramType = errors.New("shingle: n_gram_type must be char or term")
)

// Seq returns a lazy, finite, non-restartable sequence of the n-gram
// shingles of text under mode, in left-to-right order. It fails with
// ErrInvalidShingleSize if the resulting sequence would be empty, and
// ErrInvalidNGramType if mode is not Char or Term.
func Seq(text string, n int, mode Mode) (iter.Seq[string], error) {
	units, joiner, err := splitUnits(text, mode)
	if err != nil {
		return nil, err
	}

	if n <= 0 || len(units) < n {
		return nil, ErrInvalidShingleSize
	}

	return func(yield func(string) bool) {
		for i := 0; i+n <= len(units); i++ {
			if !yield(joiner(units[i : i+n])) {
				return
			}
		}
	}, nil
}

// Collect materializes Seq into a slice, preserving left-to-right order.
func Collect(text string, n int, mode Mode) ([]string, error) {
	seq, err := Seq(text, n, mode)
	if err != nil {
		return nil, err
	}

	shingles := make([]string, 0)
	for s := range seq {
		shingles = append(shingles, s)
	}

	return shingles, nil
}

// splitUnits breaks text into the atomic units a shingle window slides over,
// and returns the function used to re-join a window of units into one
// shingle string.
func splitUnits(text string, mode Mode) ([]string, func([]string) string, error) {
	switch mode {
	case Char:
		runes := []rune(text)
		units := make([]string, len(runes))

		for i, r := range runes {
			units[i] = string(r)
		}

		return units, joinChars, nil
	case Term:
		return strings.Fields(text), joinTerms, nil
	default:
		return nil, nil, ErrInvalidNGramType
	}
}

func joinChars(units []string) string {
	return strings.Join(units, "")
}

func joinTerms(units []string) string {
	return strings.Join(units, " ")
}
