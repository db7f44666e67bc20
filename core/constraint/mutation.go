// core/constraint/mutation.go
package constraint

import (
	"github.com/pkg/errors"

	"foldlab-core/rna"
)

// Evaluate counts positions (barcode excluded) where the first state's
// sequence differs from the puzzle's beginning sequence.
func (c Mutation) Evaluate(ctx *Context) (Status, error) {
	if ctx == nil || ctx.Puzzle == nil || ctx.Puzzle.Beginning == nil {
		return Status{}, errors.Wrap(ErrMissingMetadata, "mutation constraint requires the beginning sequence")
	}
	st, ok := ctx.state(0)
	if !ok {
		return Status{}, errors.Wrap(ErrMissingMetadata, "mutation constraint requires a folded state")
	}
	n, err := rna.SequenceDiff(
		ctx.Puzzle.WithoutBarcode(st.Sequence),
		ctx.Puzzle.WithoutBarcode(ctx.Puzzle.Beginning),
	)
	if err != nil {
		return Status{}, errors.Wrap(err, "mutation constraint")
	}
	return Status{Kind: KindMutation, Satisfied: n <= c.Max, Mutations: n}, nil
}
