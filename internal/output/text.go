// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"foldlab-core/constraint"
	"foldlab/internal/evaluate"
	"foldlab/internal/pretty"
	"foldlab/internal/result"
)

// WriteText prints the optional header and one TSV row per fold.
func WriteText(w io.Writer, list []result.Fold, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, f := range list {
		if _, err := fmt.Fprintln(w, FormatFoldRowTSV(f)); err != nil {
			return err
		}
	}
	return nil
}

// StreamText is WriteText over a channel, writing rows as they arrive.
func StreamText(w io.Writer, in <-chan result.Fold, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for f := range in {
		if _, err := fmt.Fprintln(w, FormatFoldRowTSV(f)); err != nil {
			return err
		}
	}
	return nil
}

// WriteEvaluationText renders a report for people: one block per state with
// the folded and target structures aligned under the sequence (carets mark
// SHAPE mismatches), then the constraint table.
func WriteEvaluationText(w io.Writer, rep *evaluate.Report, header bool) error {
	v := ToAPIEvaluation(rep)
	verdict := "UNSATISFIED"
	if v.Satisfied {
		verdict = "SATISFIED"
	}
	if _, err := fmt.Fprintf(w, "# %s %s engine=%s %s\n", v.PuzzleID, v.Title, v.Engine, verdict); err != nil {
		return err
	}
	for _, st := range v.States {
		block := pretty.Render([]pretty.Track{
			{Label: "seq", Text: st.Sequence},
			{Label: "folded", Text: st.Structure},
			{Label: "target", Text: st.Target},
		}, shapeWrongPairs(rep, st.Index), pretty.DefaultOptions)
		if _, err := fmt.Fprintf(w, "state %d  score=%g\n%s", st.Index, st.Score, block); err != nil {
			return err
		}
	}
	if header {
		if _, err := fmt.Fprintln(w, EvalTSVHeader); err != nil {
			return err
		}
	}
	for _, r := range rep.Results {
		if _, err := fmt.Fprintln(w, FormatConstraintRowTSV(rep.PuzzleID, r)); err != nil {
			return err
		}
	}
	return nil
}

// shapeWrongPairs returns the SHAPE diagnostics for state, or nil.
func shapeWrongPairs(rep *evaluate.Report, state int) []int {
	for _, r := range rep.Results {
		if c, ok := r.Constraint.(constraint.Shape); ok && c.State == state {
			return r.Status.WrongPairs
		}
	}
	return nil
}
