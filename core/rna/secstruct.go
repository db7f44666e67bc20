// core/rna/secstruct.go
package rna

import (
	"github.com/pkg/errors"
)

// ErrBadPairs is returned for partner arrays that are out of range or not reciprocal.
var ErrBadPairs = errors.New("invalid pairing array")

// SecStruct is a pairing-partner array: pairs[i] is the index paired with i,
// or -1 when i is unpaired. If pairs[i] = j >= 0 then pairs[j] = i.
type SecStruct struct {
	pairs []int
}

// NewSecStruct returns an all-unpaired structure of length n.
func NewSecStruct(n int) SecStruct {
	p := make([]int, n)
	for i := range p {
		p[i] = -1
	}
	return SecStruct{pairs: p}
}

// SecStructFromPairs validates and copies a partner array.
func SecStructFromPairs(pairs []int) (SecStruct, error) {
	n := len(pairs)
	for i, j := range pairs {
		if j < -1 || j >= n {
			return SecStruct{}, errors.Wrapf(ErrBadPairs, "partner %d of %d out of range [-1,%d)", j, i, n)
		}
		if j == i {
			return SecStruct{}, errors.Wrapf(ErrBadPairs, "position %d paired with itself", i)
		}
		if j >= 0 && pairs[j] != i {
			return SecStruct{}, errors.Wrapf(ErrBadPairs, "%d->%d but %d->%d", i, j, j, pairs[j])
		}
	}
	return SecStruct{pairs: append([]int(nil), pairs...)}, nil
}

func (s SecStruct) Len() int { return len(s.pairs) }

// PairingPartner returns the partner of i, or -1.
func (s SecStruct) PairingPartner(i int) int { return s.pairs[i] }

func (s SecStruct) IsPaired(i int) bool { return s.pairs[i] >= 0 }

// SetPairingPartner pairs i with j (j = -1 unpairs i). Both ends are written
// and any previous partners of i and j are released, so reciprocity holds
// after every call.
func (s SecStruct) SetPairingPartner(i, j int) {
	if old := s.pairs[i]; old >= 0 {
		s.pairs[old] = -1
	}
	if j < 0 {
		s.pairs[i] = -1
		return
	}
	if old := s.pairs[j]; old >= 0 {
		s.pairs[old] = -1
	}
	s.pairs[i] = j
	s.pairs[j] = i
}

// NumPairs counts each pair once.
func (s SecStruct) NumPairs() int {
	n := 0
	for i, j := range s.pairs {
		if j > i {
			n++
		}
	}
	return n
}

// Pairs returns a copy of the partner array.
func (s SecStruct) Pairs() []int { return append([]int(nil), s.pairs...) }

// Clone returns an independent copy.
func (s SecStruct) Clone() SecStruct { return SecStruct{pairs: s.Pairs()} }

// Equal reports whether two structures have identical partner arrays.
func (s SecStruct) Equal(o SecStruct) bool {
	return ArePairsSame(s.pairs, o.pairs, nil)
}

// ArePairsSame reports whether a and b agree at every position where mask is
// nil or true. Arrays of different length never match.
func ArePairsSame(a, b []int, mask []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if mask != nil && (i >= len(mask) || !mask[i]) {
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
