// core/oligo/layout.go
package oligo

import (
	"github.com/pkg/errors"

	"foldlab-core/rna"
)

// Layout describes a concatenation of strands in raw order. Consecutive
// strands are separated by one cut marker, and the cut markers occupy
// positions in the index space.
type Layout struct {
	Lengths []int
}

// LayoutOf derives the strand layout from the cut markers in seq.
func LayoutOf(seq rna.Sequence) Layout {
	return Layout{Lengths: seq.Strands()}
}

// Size is the total number of positions including cut markers.
func (l Layout) Size() int {
	if len(l.Lengths) == 0 {
		return 0
	}
	n := len(l.Lengths) - 1
	for _, x := range l.Lengths {
		n += x
	}
	return n
}

// starts returns the raw start offset of each strand.
func (l Layout) starts() []int {
	out := make([]int, len(l.Lengths))
	off := 0
	for i, x := range l.Lengths {
		out[i] = off
		off += x + 1
	}
	return out
}

// IndexMap computes raw -> reordered indices for strands laid out in order
// (order[k] is the raw strand placed k-th). A nil or identity order needs no
// reordering and yields a nil map. The k-th cut marker stays the k-th cut
// marker.
func (l Layout) IndexMap(order []int) (*Permutation, error) {
	if order == nil {
		return nil, nil
	}
	if len(order) != len(l.Lengths) {
		return nil, errors.Wrapf(ErrNotPermutation, "order has %d strands, layout has %d", len(order), len(l.Lengths))
	}
	seen := make([]bool, len(order))
	identity := true
	for k, s := range order {
		if s < 0 || s >= len(order) || seen[s] {
			return nil, errors.Wrapf(ErrNotPermutation, "bad strand order %v", order)
		}
		seen[s] = true
		if s != k {
			identity = false
		}
	}
	if identity {
		return nil, nil
	}

	starts := l.starts()
	fwd := make([]int, l.Size())
	pos := 0
	for k, s := range order {
		for b := 0; b < l.Lengths[s]; b++ {
			fwd[starts[s]+b] = pos
			pos++
		}
		if k < len(order)-1 {
			// cut that follows raw strand k moves to the slot after placed strand k
			fwd[starts[k]+l.Lengths[k]] = pos
			pos++
		}
	}
	return NewPermutation(fwd)
}
