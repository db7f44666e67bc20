// internal/cli/fold.go
package cli

import (
	"bufio"
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"foldlab-core/folding"
	"foldlab-core/rna"
	"foldlab/internal/cmdutil"
	"foldlab/internal/foldcache"
	"foldlab/internal/pipeline"
	"foldlab/internal/result"
	"foldlab/internal/writers"
)

func (a *app) foldCmd() *cobra.Command {
	var seqs []string
	cmd := &cobra.Command{
		Use:   "fold [FASTA...]",
		Short: "Fold sequences from FASTA files ('-' for stdin) or --seq",
		Example: `  foldlab fold --seq GGGAAACCC
  foldlab fold -o jsonl --threads 8 designs.fa.gz
  cat designs.fa | foldlab fold -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(seqs) == 0 && len(args) == 0:
				return usageErr(errors.New("provide FASTA files or --seq"))
			case len(seqs) > 0 && len(args) > 0:
				return usageErr(errors.New("--seq conflicts with FASTA arguments"))
			}
			folder, err := a.folder(cmd.Context())
			if err != nil {
				return err
			}
			if len(seqs) > 0 {
				return a.foldInline(cmd.Context(), folder, seqs)
			}
			return a.foldFiles(cmd.Context(), folder, args)
		},
	}
	cmd.Flags().StringSliceVarP(&seqs, "seq", "s", nil, "sequence to fold (repeatable, comma separated)")
	return cmd
}

// foldInline folds sequences given on the command line, in order.
func (a *app) foldInline(ctx context.Context, folder folding.Folder, raw []string) error {
	parsed := make([]rna.Sequence, len(raw))
	for i, s := range raw {
		seq, err := rna.ParseSequence(s)
		if err != nil {
			return usageErr(errors.Wrapf(err, "--seq %d", i+1))
		}
		parsed[i] = seq
	}

	outw := bufio.NewWriter(a.stdout)
	in, done := writers.StartFoldWriter(outw, a.cfg.Output, a.cfg.Sort, a.cfg.Header, len(parsed))
	folded := 0
	for i, seq := range parsed {
		if err := ctx.Err(); err != nil {
			close(in)
			<-done
			return err
		}
		f, err := result.FoldOne(folder, seq, a.cfg.MaxLength)
		f.SequenceID = fmt.Sprintf("seq%d", i+1)
		f.Index = i
		if err != nil {
			if !errors.Is(err, result.ErrTooLong) {
				close(in)
				<-done
				return err
			}
			a.log.Warn().Err(err).Str("id", f.SequenceID).Msg("record skipped")
			f.Err = err
		} else {
			folded++
		}
		in <- f
	}
	close(in)
	return a.finishFolds(outw, <-done, folded)
}

// foldFiles runs the worker pipeline over FASTA inputs.
func (a *app) foldFiles(ctx context.Context, folder folding.Folder, args []string) error {
	files, err := cmdutil.ExpandInputs(args)
	if err != nil {
		return usageErr(err)
	}
	outw := bufio.NewWriter(a.stdout)
	in, done := writers.StartFoldWriter(outw, a.cfg.Output, a.cfg.Sort, a.cfg.Header, a.cfg.Threads*4)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	n, perr := cmdutil.RunStream(ctx,
		pipeline.Config{
			Threads:   a.cfg.Threads,
			MaxLength: a.cfg.MaxLength,
			Logger:    a.log,
			Cache:     foldcache.New[string, result.Fold](a.cfg.CacheSize),
		},
		files, folder,
		func(f result.Fold) error {
			select {
			case in <- f:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)
	close(in)
	werr := <-done
	a.log.Info().Int("folded", n.Folded).Int("failed", n.Failed).Int("files", len(files)).Msg("fold finished")

	if perr != nil {
		_ = outw.Flush()
		if errors.Is(perr, context.Canceled) {
			return perr
		}
		return &exitError{code: ExitIO, err: perr}
	}
	return a.finishFolds(outw, werr, n.Folded)
}

// finishFolds flushes output and picks the exit status: an I/O failure, or
// the no-result code when nothing folded.
func (a *app) finishFolds(outw *bufio.Writer, werr error, folded int) error {
	if werr != nil && !writers.IsBrokenPipe(werr) {
		return &exitError{code: ExitIO, err: werr}
	}
	if err := outw.Flush(); err != nil && !writers.IsBrokenPipe(err) {
		return &exitError{code: ExitIO, err: err}
	}
	if folded == 0 {
		return silentExit(a.cfg.UnsatisfiedExitCode)
	}
	return nil
}
