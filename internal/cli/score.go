// internal/cli/score.go
package cli

import (
	"bufio"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"foldlab-core/folding"
	"foldlab-core/rna"
	"foldlab/internal/result"
	"foldlab/internal/writers"
)

func (a *app) scoreCmd() *cobra.Command {
	var (
		seq, structure string
		pseudoknots    bool
	)
	cmd := &cobra.Command{
		Use:     "score --seq SEQ --structure DOTBRACKET",
		Short:   "Score a given structure on a sequence",
		Example: `  foldlab score --seq GGGAAACCC --structure "(((...)))"`,
		Args: func(cmd *cobra.Command, args []string) error {
			return usageErr(cobra.NoArgs(cmd, args))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if seq == "" || structure == "" {
				return usageErr(errors.New("--seq and --structure are required"))
			}
			s, err := rna.ParseSequence(seq)
			if err != nil {
				return usageErr(errors.Wrap(err, "--seq"))
			}
			ss, err := rna.ParseDotBracket(rna.NormalizeDotBracket(structure), pseudoknots)
			if err != nil {
				return usageErr(errors.Wrap(err, "--structure"))
			}
			folder, err := a.folder(cmd.Context())
			if err != nil {
				return err
			}
			score, err := folder.ScoreStructures(s, ss, folding.ScoreOptions{
				Pseudoknotted: pseudoknots,
				TemperatureC:  folding.DefaultTemperatureC,
			})
			if err != nil {
				return usageErr(err)
			}

			outw := bufio.NewWriter(a.stdout)
			in, done := writers.StartFoldWriter(outw, a.cfg.Output, false, a.cfg.Header, 1)
			in <- result.Fold{
				SequenceID: "input",
				Engine:     folder.Name(),
				Sequence:   s,
				Structure:  ss,
				Score:      score,
				GC:         result.GCContent(s),
			}
			close(in)
			return a.finishFolds(outw, <-done, 1)
		},
	}
	cmd.Flags().StringVarP(&seq, "seq", "s", "", "sequence")
	cmd.Flags().StringVar(&structure, "structure", "", "structure in dot-bracket notation")
	cmd.Flags().BoolVar(&pseudoknots, "pseudoknots", false, "accept [] {} <> bracket classes")
	return cmd
}
