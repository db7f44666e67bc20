// internal/cli/eval.go
package cli

import (
	"bufio"
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"foldlab-core/rna"
	"foldlab/internal/evaluate"
	"foldlab/internal/puzzlefile"
	"foldlab/internal/result"
	"foldlab/internal/store"
	"foldlab/internal/writers"
)

func (a *app) evalCmd() *cobra.Command {
	var (
		seq       string
		stateSeqs []string
		save      bool
	)
	cmd := &cobra.Command{
		Use:   "eval PUZZLE.yaml --seq SEQ",
		Short: "Fold a design in every puzzle state and check the constraints",
		Long: `eval folds the design once per puzzle state, compares each fold with the
state's target (and anti-target), checks the mutation budget and prints the
outcome. The exit code is --unsatisfied-exit-code when any constraint fails.`,
		Example: `  foldlab eval hairpin.yaml --seq GGGAAACCC
  foldlab eval switch.yaml --seq GGGAAACCC --state-seq "GGGAAACCC&GGG" -o json`,
		Args: func(cmd *cobra.Command, args []string) error {
			return usageErr(cobra.ExactArgs(1)(cmd, args))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if seq == "" {
				return usageErr(errors.New("--seq is required"))
			}
			p, err := puzzlefile.Load(args[0])
			if err != nil {
				return usageErr(err)
			}
			seqs, err := parseSeqs(append([]string{seq}, stateSeqs...))
			if err != nil {
				return usageErr(err)
			}
			for _, s := range seqs {
				if a.cfg.MaxLength > 0 && s.Len() > a.cfg.MaxLength {
					return usageErr(errors.Wrapf(result.ErrTooLong, "%d > %d", s.Len(), a.cfg.MaxLength))
				}
			}
			folder, err := a.folder(cmd.Context())
			if err != nil {
				return err
			}
			rep, err := evaluate.New(folder, a.log).Run(p, seqs)
			if err != nil {
				return usageErr(err)
			}
			a.log.Info().Str("puzzle", rep.PuzzleID).Bool("satisfied", rep.Satisfied).Msg("evaluated")

			if save {
				if err := a.saveReport(cmd.Context(), rep); err != nil {
					return &exitError{code: ExitIO, err: err}
				}
			}

			outw := bufio.NewWriter(a.stdout)
			if err := writers.WriteReport(outw, a.cfg.Output, a.cfg.Header, rep); err != nil {
				return &exitError{code: ExitIO, err: err}
			}
			if err := outw.Flush(); err != nil && !writers.IsBrokenPipe(err) {
				return &exitError{code: ExitIO, err: err}
			}
			if !rep.Satisfied {
				return silentExit(a.cfg.UnsatisfiedExitCode)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&seq, "seq", "s", "", "design sequence (state 0, and every state without --state-seq)")
	cmd.Flags().StringArrayVar(&stateSeqs, "state-seq", nil, "sequence for states 1..N, in order (repeatable)")
	cmd.Flags().BoolVar(&save, "save", false, "store the design and its evaluation in --db")
	return cmd
}

func parseSeqs(raw []string) ([]rna.Sequence, error) {
	out := make([]rna.Sequence, len(raw))
	for i, s := range raw {
		seq, err := rna.ParseSequence(s)
		if err != nil {
			return nil, errors.Wrapf(err, "sequence %d", i+1)
		}
		out[i] = seq
	}
	return out, nil
}

// saveReport stores state 0 of rep with its JSON evaluation.
func (a *app) saveReport(ctx context.Context, rep *evaluate.Report) error {
	d, err := designFromReport(rep)
	if err != nil {
		return err
	}
	saved, err := a.withStore(ctx, func(st *store.Store) (store.Design, error) {
		return st.Save(ctx, d)
	})
	if err != nil {
		return err
	}
	a.log.Info().Str("id", saved.ID).Str("db", a.cfg.DB).Msg("design saved")
	return nil
}
