// core/rna/base.go
package rna

import (
	"unicode"

	"github.com/pkg/errors"
)

// Base is a single nucleotide code.
type Base byte

const (
	A   Base = 'A'
	C   Base = 'C'
	G   Base = 'G'
	U   Base = 'U'
	Cut Base = '&' // strand boundary between concatenated oligos
)

// ErrBadBase is returned for characters that are not A/C/G/U/T or a cut marker.
var ErrBadBase = errors.New("invalid base")

// PairKind classifies a base pair.
type PairKind int

const (
	NoPair PairKind = iota
	GC
	AU
	GU // wobble
)

// PairType reports which canonical pair (if any) a and b form.
func PairType(a, b Base) PairKind {
	switch {
	case (a == G && b == C) || (a == C && b == G):
		return GC
	case (a == A && b == U) || (a == U && b == A):
		return AU
	case (a == G && b == U) || (a == U && b == G):
		return GU
	default:
		return NoPair
	}
}

// CanPair reports whether a and b can form any canonical pair.
func CanPair(a, b Base) bool { return PairType(a, b) != NoPair }

// Normalize removes spaces/quotes and uppercases letters.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if skipRune(r) {
			continue
		}
		out = append(out, unicode.ToUpper(r))
	}
	return string(out)
}

func skipRune(r rune) bool {
	return unicode.IsSpace(r) || r == '\'' || r == '"'
}

// ParseBase maps one character to a Base. T is read as U.
func ParseBase(r rune) (Base, error) {
	switch unicode.ToUpper(r) {
	case 'A':
		return A, nil
	case 'C':
		return C, nil
	case 'G':
		return G, nil
	case 'U', 'T':
		return U, nil
	case '&':
		return Cut, nil
	}
	return 0, errors.Wrapf(ErrBadBase, "%q; allowed: A C G U T &", r)
}

func (b Base) String() string { return string(rune(b)) }
