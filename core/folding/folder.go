// Package folding defines the contract every folding engine implements and
// a registry that builds engines by name.
//
// Engines are pure: FoldSequence and ScoreStructures never retain or mutate
// their inputs and may be called concurrently. Only construction may block
// on external resources, which is why factories take a context.
package folding

import (
	"foldlab-core/rna"
)

// DefaultTemperatureC is the folding temperature the CLI passes to engines.
const DefaultTemperatureC = 37.0

// ScoreOptions tunes ScoreStructures. Simple engines ignore everything here.
type ScoreOptions struct {
	Pseudoknotted bool
	TemperatureC  float64
	// OutNodes, when non-nil, receives engine-specific per-loop details.
	OutNodes *[]float64
}

// FoldOptions carries optional hints to FoldSequence.
type FoldOptions struct {
	SecondBest    *rna.SecStruct
	Desired       string // dot-bracket hint
	Pseudoknotted bool
	TemperatureC  float64
}

// Folder is the capability set of a folding engine.
type Folder interface {
	Name() string
	IsFunctional() bool
	// ScoreStructures scores pairs for seq. Lengths must match.
	ScoreStructures(seq rna.Sequence, pairs rna.SecStruct, opts ScoreOptions) (float64, error)
	// FoldSequence predicts a structure for seq.
	FoldSequence(seq rna.Sequence, opts FoldOptions) (rna.SecStruct, error)
}
