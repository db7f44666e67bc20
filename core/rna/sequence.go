// core/rna/sequence.go
package rna

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrLengthMismatch is returned when two index-aligned inputs differ in length.
var ErrLengthMismatch = errors.New("length mismatch")

// Sequence is an ordered run of bases. Callers must not mutate a Sequence
// after handing it to a folder.
type Sequence []Base

// NewSequence copies bases into a Sequence.
func NewSequence(bases []Base) Sequence {
	return append(Sequence(nil), bases...)
}

// ParseSequence reads a base-letter string such as "GGGAAACCC" or "GGA&UCC".
func ParseSequence(raw string) (Sequence, error) {
	out := make(Sequence, 0, len(raw))
	pos := 0
	for _, r := range raw {
		pos++
		if skipRune(r) {
			continue
		}
		b, err := ParseBase(r)
		if err != nil {
			// pos counts runes of raw, not of the normalized form
			return nil, errors.Wrapf(err, "at %d", pos)
		}
		out = append(out, b)
	}
	return out, nil
}

// MustParseSequence is ParseSequence for literals in tests and tables.
func MustParseSequence(raw string) Sequence {
	s, err := ParseSequence(raw)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Sequence) Len() int { return len(s) }

// At returns the base at i.
func (s Sequence) At(i int) Base { return s[i] }

func (s Sequence) String() string {
	var b strings.Builder
	b.Grow(len(s))
	for _, x := range s {
		b.WriteByte(byte(x))
	}
	return b.String()
}

// Strands returns the length of each cut-separated strand. Cut markers are
// not counted in any strand.
func (s Sequence) Strands() []int {
	lens := []int{0}
	for _, b := range s {
		if b == Cut {
			lens = append(lens, 0)
			continue
		}
		lens[len(lens)-1]++
	}
	return lens
}

// WithoutIndices returns a copy of s with the listed positions removed.
// Out-of-range indices are ignored.
func (s Sequence) WithoutIndices(drop []int) Sequence {
	if len(drop) == 0 {
		return NewSequence(s)
	}
	skip := make(map[int]struct{}, len(drop))
	for _, i := range drop {
		skip[i] = struct{}{}
	}
	out := make(Sequence, 0, len(s))
	for i, b := range s {
		if _, ok := skip[i]; ok {
			continue
		}
		out = append(out, b)
	}
	return out
}

// SequenceDiff counts positions where a and b differ.
func SequenceDiff(a, b Sequence) (int, error) {
	if len(a) != len(b) {
		return 0, errors.Wrapf(ErrLengthMismatch, "sequence diff: %d vs %d", len(a), len(b))
	}
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n, nil
}
