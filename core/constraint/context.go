// core/constraint/context.go
package constraint

import (
	"foldlab-core/oligo"
	"foldlab-core/rna"
)

// Structure types stored in TargetConditions.Type.
const (
	TypeSingle     = "single"
	TypePseudoknot = "pseudoknot"
)

// TargetConditions is the per-state target record authored with a puzzle.
// The core only reads it.
type TargetConditions struct {
	Type                     string
	SecStruct                string // target dot-bracket
	StructureConstraints     []bool // nil: every position matters
	AntiSecStruct            string // empty: no anti-target
	AntiStructureConstraints []bool
	// CustomLayout is opaque drawing data, passed through untouched.
	CustomLayout [][2]*float64
	// OligoOrder is the natural fold order of strands; TargetOligoOrder the
	// order the target structure is written in. nil means raw order.
	OligoOrder       []int
	TargetOligoOrder []int
}

// Pseudoknotted reports whether the target uses the pseudoknot bracket classes.
func (tc *TargetConditions) Pseudoknotted() bool {
	return tc != nil && tc.Type == TypePseudoknot
}

// State is one folded condition of a design.
type State struct {
	Sequence rna.Sequence
	// NaturalPairs is the folded structure, indexed in natural order.
	NaturalPairs rna.SecStruct
	// TargetPairs is the target structure, indexed in target order.
	TargetPairs rna.SecStruct
	// NaturalMap and TargetMap map raw indices to natural/target indices;
	// nil means no reordering.
	NaturalMap *oligo.Permutation
	TargetMap  *oligo.Permutation
	Conditions *TargetConditions
}

// Puzzle is the slice of puzzle data constraints may consult.
type Puzzle struct {
	Beginning rna.Sequence
	// Barcode lists positions excluded from mutation counting.
	Barcode []int
}

// WithoutBarcode strips barcode positions from seq.
func (p *Puzzle) WithoutBarcode(seq rna.Sequence) rna.Sequence {
	return seq.WithoutIndices(p.Barcode)
}

// Context bundles one evaluation's inputs. It is built by the caller for a
// single evaluation and not retained.
type Context struct {
	States           []State
	Puzzle           *Puzzle
	TargetConditions []*TargetConditions
}

func (c *Context) conditions(state int) *TargetConditions {
	if c == nil || state < 0 || state >= len(c.TargetConditions) {
		return nil
	}
	return c.TargetConditions[state]
}

func (c *Context) state(state int) (*State, bool) {
	if c == nil || state < 0 || state >= len(c.States) {
		return nil, false
	}
	return &c.States[state], true
}
