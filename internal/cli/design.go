// internal/cli/design.go
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"foldlab-core/rna"
	"foldlab/internal/evaluate"
	"foldlab/internal/output"
	"foldlab/internal/puzzlefile"
	"foldlab/internal/result"
	"foldlab/internal/store"
	"foldlab/internal/writers"
)

func (a *app) designCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "design",
		Short: "Save and list designs in the SQLite store (--db)",
	}
	cmd.AddCommand(a.designSaveCmd(), a.designListCmd(), a.designShowCmd())
	return cmd
}

func (a *app) designSaveCmd() *cobra.Command {
	var seq, puzzle string
	cmd := &cobra.Command{
		Use:   "save --seq SEQ [--puzzle PUZZLE.yaml]",
		Short: "Fold a design (and evaluate it against a puzzle) and store it",
		Args: func(cmd *cobra.Command, args []string) error {
			return usageErr(cobra.NoArgs(cmd, args))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if seq == "" {
				return usageErr(errors.New("--seq is required"))
			}
			parsed, err := rna.ParseSequence(seq)
			if err != nil {
				return usageErr(errors.Wrap(err, "--seq"))
			}
			folder, err := a.folder(cmd.Context())
			if err != nil {
				return err
			}

			var d store.Design
			if puzzle != "" {
				p, err := puzzlefile.Load(puzzle)
				if err != nil {
					return usageErr(err)
				}
				rep, err := evaluate.New(folder, a.log).Run(p, []rna.Sequence{parsed})
				if err != nil {
					return usageErr(err)
				}
				if d, err = designFromReport(rep); err != nil {
					return &exitError{code: ExitIO, err: err}
				}
			} else {
				f, err := result.FoldOne(folder, parsed, a.cfg.MaxLength)
				if err != nil {
					return usageErr(err)
				}
				d = store.Design{
					Sequence:  f.Sequence.String(),
					Structure: output.ToAPIFold(f).Structure,
					Engine:    f.Engine,
					Score:     f.Score,
					GC:        f.GC,
				}
			}

			saved, err := a.withStore(cmd.Context(), func(st *store.Store) (store.Design, error) {
				return st.Save(cmd.Context(), d)
			})
			if err != nil {
				return &exitError{code: ExitIO, err: err}
			}
			a.log.Info().Str("id", saved.ID).Str("db", a.cfg.DB).Bool("satisfied", saved.Satisfied).Msg("design saved")
			_, err = fmt.Fprintln(a.stdout, saved.ID)
			return err
		},
	}
	cmd.Flags().StringVarP(&seq, "seq", "s", "", "design sequence")
	cmd.Flags().StringVarP(&puzzle, "puzzle", "p", "", "evaluate against this puzzle file before saving")
	return cmd
}

func (a *app) designListCmd() *cobra.Command {
	var f store.ListFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored designs, newest first",
		Args: func(cmd *cobra.Command, args []string) error {
			return usageErr(cobra.NoArgs(cmd, args))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.Limit < 0 {
				return usageErr(errors.Errorf("--limit must be >= 0, got %d", f.Limit))
			}
			st, err := store.Open(cmd.Context(), a.cfg.DB)
			if err != nil {
				return &exitError{code: ExitIO, err: err}
			}
			defer st.Close()

			list, err := st.List(cmd.Context(), f)
			if err != nil {
				return &exitError{code: ExitIO, err: err}
			}
			a.log.Debug().Int("designs", len(list)).Msg("listed")
			outw := bufio.NewWriter(a.stdout)
			if err := writers.WriteDesigns(outw, a.cfg.Output, a.cfg.Header, list); err != nil {
				return &exitError{code: ExitIO, err: err}
			}
			if err := outw.Flush(); err != nil && !writers.IsBrokenPipe(err) {
				return &exitError{code: ExitIO, err: err}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&f.PuzzleID, "puzzle-id", "", "only designs for this puzzle")
	cmd.Flags().BoolVar(&f.SatisfiedOnly, "satisfied", false, "only designs that satisfied their puzzle")
	cmd.Flags().IntVar(&f.Limit, "limit", 0, "at most N designs (0 = all)")
	return cmd
}

func (a *app) designShowCmd() *cobra.Command {
	var puzzleID string
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print one stored design with its evaluation as JSON",
		Args: func(cmd *cobra.Command, args []string) error {
			return usageErr(cobra.ExactArgs(1)(cmd, args))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.withStore(cmd.Context(), func(st *store.Store) (store.Design, error) {
				return st.Get(cmd.Context(), args[0], puzzleID)
			})
			if errors.Is(err, store.ErrNotFound) {
				return &exitError{code: ExitNoResult, err: err}
			}
			if err != nil {
				return &exitError{code: ExitIO, err: err}
			}
			view := struct {
				Design     any             `json:"design"`
				Evaluation json.RawMessage `json:"evaluation,omitempty"`
			}{Design: output.ToAPIDesign(d)}
			if d.Evaluation != "" {
				view.Evaluation = json.RawMessage(d.Evaluation)
			}
			return output.EncodePretty(a.stdout, view)
		},
	}
	cmd.Flags().StringVar(&puzzleID, "puzzle-id", "", "puzzle the design was saved for (\"\" for free folds)")
	return cmd
}

// withStore opens the configured store for one operation.
func (a *app) withStore(ctx context.Context, fn func(*store.Store) (store.Design, error)) (store.Design, error) {
	st, err := store.Open(ctx, a.cfg.DB)
	if err != nil {
		return store.Design{}, err
	}
	defer st.Close()
	return fn(st)
}

// designFromReport builds the stored form of an evaluated design: state 0's
// sequence and fold, plus the JSON evaluation.
func designFromReport(rep *evaluate.Report) (store.Design, error) {
	v := output.ToAPIEvaluation(rep)
	ev, err := json.Marshal(v)
	if err != nil {
		return store.Design{}, errors.Wrap(err, "encode evaluation")
	}
	s0 := rep.States[0]
	return store.Design{
		PuzzleID:   rep.PuzzleID,
		Sequence:   s0.Sequence.String(),
		Structure:  v.States[0].Structure,
		Engine:     rep.Engine,
		Score:      s0.Score,
		GC:         result.GCContent(s0.Sequence),
		Satisfied:  rep.Satisfied,
		Evaluation: string(ev),
	}, nil
}
