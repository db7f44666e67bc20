// core/constraint/shape.go
package constraint

import (
	"github.com/pkg/errors"

	"foldlab-core/oligo"
	"foldlab-core/rna"
)

// alignedPairs returns the state's folded pairs in target index order.
func alignedPairs(st *State) ([]int, error) {
	return oligo.TargetAlignedNaturalPairs(st.NaturalPairs.Pairs(), st.NaturalMap, st.TargetMap)
}

// alignedMask projects a raw-order mask into target order. nil stays nil; a
// non-nil mask must cover all n positions.
func alignedMask(mask []bool, st *State, n int) ([]bool, error) {
	if mask == nil {
		return nil, nil
	}
	if len(mask) != n {
		return nil, errors.Wrapf(rna.ErrLengthMismatch, "mask %d, structure %d", len(mask), n)
	}
	return oligo.TargetAlignedConstraints(mask, st.TargetMap)
}

// Evaluate compares the folded structure with the target at every relevant
// position.
func (c Shape) Evaluate(ctx *Context) (Status, error) {
	st, ok := ctx.state(c.State)
	if !ok {
		return Status{}, errors.Wrapf(ErrMissingMetadata, "shape constraint: no state %d", c.State)
	}
	natural, err := alignedPairs(st)
	if err != nil {
		return Status{}, errors.Wrapf(err, "shape constraint state %d", c.State)
	}
	target := st.TargetPairs.Pairs()
	if len(target) != len(natural) {
		return Status{}, errors.Wrapf(rna.ErrLengthMismatch, "shape constraint state %d: folded %d, target %d", c.State, len(natural), len(target))
	}
	var mask []bool
	if tc := ctx.conditions(c.State); tc != nil {
		m, err := alignedMask(tc.StructureConstraints, st, len(natural))
		if err != nil {
			return Status{}, errors.Wrapf(err, "shape constraint state %d", c.State)
		}
		mask = m
	}
	return Status{
		Kind:       KindShape,
		Satisfied:  rna.ArePairsSame(natural, target, mask),
		WrongPairs: shapeWrongPairs(natural, target, mask),
	}, nil
}

func shapeWrongPairs(natural, target []int, mask []bool) []int {
	out := make([]int, len(natural))
	for i := range out {
		relevant := mask == nil || mask[i]
		switch {
		case !relevant:
			out[i] = 0
		case natural[i] != target[i]:
			out[i] = 1
		default:
			out[i] = -1
		}
	}
	return out
}

// Evaluate is satisfied when the folded structure differs from the
// anti-target somewhere relevant. Diagnostics don't localize the difference:
// every relevant position is marked with the overall outcome.
func (c AntiShape) Evaluate(ctx *Context) (Status, error) {
	if ctx == nil || ctx.TargetConditions == nil {
		return Status{}, errors.Wrap(ErrMissingMetadata, "antishape constraint: no target conditions")
	}
	tc := ctx.conditions(c.State)
	if tc == nil {
		return Status{}, errors.Wrapf(ErrMissingMetadata, "antishape constraint: no target condition for state %d", c.State)
	}
	st, ok := ctx.state(c.State)
	if !ok {
		return Status{}, errors.Wrapf(ErrMissingMetadata, "antishape constraint: no state %d", c.State)
	}
	if tc.AntiSecStruct == "" {
		return Status{}, errors.Wrapf(ErrMissingMetadata, "antishape constraint: no anti-structure for state %d", c.State)
	}

	natural, err := alignedPairs(st)
	if err != nil {
		return Status{}, errors.Wrapf(err, "antishape constraint state %d", c.State)
	}
	anti, err := rna.ParseDotBracket(tc.AntiSecStruct, tc.Pseudoknotted())
	if err != nil {
		return Status{}, errors.Wrapf(err, "antishape constraint state %d", c.State)
	}
	if anti.Len() != len(natural) {
		return Status{}, errors.Wrapf(rna.ErrLengthMismatch, "antishape constraint state %d: folded %d, anti-target %d", c.State, len(natural), anti.Len())
	}
	mask, err := alignedMask(tc.AntiStructureConstraints, st, len(natural))
	if err != nil {
		return Status{}, errors.Wrapf(err, "antishape constraint state %d", c.State)
	}

	satisfied := !rna.ArePairsSame(natural, anti.Pairs(), mask)
	return Status{
		Kind:       KindAntiShape,
		Satisfied:  satisfied,
		WrongPairs: antiShapeWrongPairs(len(natural), mask, satisfied),
	}, nil
}

func antiShapeWrongPairs(n int, mask []bool, satisfied bool) []int {
	mark := 1
	if satisfied {
		mark = -1
	}
	out := make([]int, n)
	for i := range out {
		if mask == nil || mask[i] {
			out[i] = mark
		}
	}
	return out
}
