// core/oligo/permutation.go
package oligo

import (
	"github.com/pkg/errors"
)

// ErrNotPermutation is returned when an index map is not a bijection.
var ErrNotPermutation = errors.New("index map is not a permutation")

// Permutation maps raw concatenation indices to reordered indices. A nil
// *Permutation is the identity over any length.
type Permutation struct {
	fwd []int // raw -> reordered
	inv []int // reordered -> raw
}

// NewPermutation validates forward (raw -> reordered) as a bijection over
// 0..len(forward)-1 and builds its inverse.
func NewPermutation(forward []int) (*Permutation, error) {
	n := len(forward)
	inv := make([]int, n)
	for i := range inv {
		inv[i] = -1
	}
	for raw, to := range forward {
		if to < 0 || to >= n {
			return nil, errors.Wrapf(ErrNotPermutation, "raw %d maps to %d, outside [0,%d)", raw, to, n)
		}
		if prev := inv[to]; prev >= 0 {
			return nil, errors.Wrapf(ErrNotPermutation, "raw %d and %d both map to %d", prev, raw, to)
		}
		inv[to] = raw
	}
	return &Permutation{fwd: append([]int(nil), forward...), inv: inv}, nil
}

// Len is the size of the index space (0 for nil).
func (p *Permutation) Len() int {
	if p == nil {
		return 0
	}
	return len(p.fwd)
}

// Apply maps a raw index to its reordered index.
func (p *Permutation) Apply(raw int) int {
	if p == nil {
		return raw
	}
	return p.fwd[raw]
}

// Invert maps a reordered index back to its raw index.
func (p *Permutation) Invert(reordered int) int {
	if p == nil {
		return reordered
	}
	return p.inv[reordered]
}

// Inverse returns the reverse mapping as a Permutation.
func (p *Permutation) Inverse() *Permutation {
	if p == nil {
		return nil
	}
	return &Permutation{fwd: append([]int(nil), p.inv...), inv: append([]int(nil), p.fwd...)}
}

// IsIdentity reports whether every index maps to itself.
func (p *Permutation) IsIdentity() bool {
	if p == nil {
		return true
	}
	for i, v := range p.fwd {
		if i != v {
			return false
		}
	}
	return true
}

// Forward returns a copy of the raw -> reordered array.
func (p *Permutation) Forward() []int {
	if p == nil {
		return nil
	}
	return append([]int(nil), p.fwd...)
}

// checkLen rejects a non-nil map whose size differs from n.
func (p *Permutation) checkLen(n int, what string) error {
	if p != nil && len(p.fwd) != n {
		return errors.Wrapf(ErrNotPermutation, "%s: map covers %d positions, array has %d", what, len(p.fwd), n)
	}
	return nil
}
