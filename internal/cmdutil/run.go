// internal/cmdutil/run.go
package cmdutil

import (
	"context"

	"foldlab-core/folding"
	"foldlab/internal/pipeline"
	"foldlab/internal/result"
)

// Counts tallies the records a run produced.
type Counts struct {
	Folded int // records folded successfully
	Failed int // records reported with a per-record error
}

// RunStream runs the folding pipeline and forwards every fold to send,
// which should honor ctx. It returns the tallies and the first error.
func RunStream(
	ctx context.Context,
	cfg pipeline.Config,
	seqFiles []string,
	folder folding.Folder,
	send func(result.Fold) error,
) (Counts, error) {
	var n Counts
	err := pipeline.ForEachFold(ctx, cfg, seqFiles, folder, func(f result.Fold) error {
		if err := send(f); err != nil {
			return err
		}
		if f.Err != nil {
			n.Failed++
		} else {
			n.Folded++
		}
		return nil
	})
	return n, err
}
