// core/oligo/align.go
package oligo

import (
	"foldlab-core/rna"
)

// TargetAlignedConstraints projects a per-position mask from raw indices to
// the reordered (target) index space: out[m(i)] = raw[i]. A nil map returns
// raw unchanged.
func TargetAlignedConstraints(raw []bool, m *Permutation) ([]bool, error) {
	if m == nil {
		return raw, nil
	}
	if err := m.checkLen(len(raw), "constraints"); err != nil {
		return nil, err
	}
	out := make([]bool, len(raw))
	for i, v := range raw {
		out[m.Apply(i)] = v
	}
	return out, nil
}

// TargetAlignedNaturalPairs re-expresses a pairing array folded in natural
// strand order (indices via naturalMap) in target order (via targetMap), so
// it can be compared with the target structure. Unpaired positions stay -1.
// With both maps nil the input is returned as a copy; a single nil map is
// treated as identity on that side.
func TargetAlignedNaturalPairs(natural []int, naturalMap, targetMap *Permutation) ([]int, error) {
	if naturalMap == nil && targetMap == nil {
		return append([]int(nil), natural...), nil
	}
	if err := naturalMap.checkLen(len(natural), "natural map"); err != nil {
		return nil, err
	}
	if err := targetMap.checkLen(len(natural), "target map"); err != nil {
		return nil, err
	}
	out := make([]int, len(natural))
	for raw := range natural {
		partner := natural[naturalMap.Apply(raw)]
		if partner < 0 {
			out[targetMap.Apply(raw)] = partner
			continue
		}
		out[targetMap.Apply(raw)] = targetMap.Apply(naturalMap.Invert(partner))
	}
	return out, nil
}

// ApplyPairs re-indexes a pairing array through m (raw -> reordered). It is
// TargetAlignedNaturalPairs with an identity natural side.
func ApplyPairs(pairs []int, m *Permutation) ([]int, error) {
	return TargetAlignedNaturalPairs(pairs, nil, m)
}

// ApplySequence lays seq out in reordered index space: out[m(i)] = seq[i].
// Cut markers land on cut positions because IndexMap keeps them in place.
func ApplySequence(seq rna.Sequence, m *Permutation) (rna.Sequence, error) {
	if m == nil {
		return rna.NewSequence(seq), nil
	}
	if err := m.checkLen(len(seq), "sequence"); err != nil {
		return nil, err
	}
	out := make(rna.Sequence, len(seq))
	for i, b := range seq {
		out[m.Apply(i)] = b
	}
	return out, nil
}
