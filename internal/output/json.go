// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"foldlab-core/constraint"
	"foldlab-core/rna"
	"foldlab/internal/evaluate"
	"foldlab/internal/result"
	"foldlab/pkg/api"
)

// EncodePretty writes v as indented JSON to w.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ToAPIFold converts a fold to the stable wire schema (v1).
func ToAPIFold(f result.Fold) api.FoldV1 {
	v := api.FoldV1{
		SequenceID: f.SequenceID,
		Engine:     f.Engine,
		Sequence:   f.Sequence.String(),
		Length:     f.Sequence.Len(),
		SourceFile: f.SourceFile,
	}
	if f.Err != nil {
		v.Error = f.Err.Error()
		return v
	}
	v.Structure = f.DotBracket()
	v.Pairs = f.Structure.NumPairs()
	v.Score = f.Score
	v.GC = f.GC
	return v
}

func toAPIFolds(list []result.Fold) []api.FoldV1 {
	out := make([]api.FoldV1, 0, len(list))
	for _, f := range list {
		out = append(out, ToAPIFold(f))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 folds (pretty-indented).
func WriteJSON(w io.Writer, list []result.Fold) error {
	return EncodePretty(w, toAPIFolds(list))
}

// ToAPIConstraint converts one constraint result.
func ToAPIConstraint(r constraint.Result) api.ConstraintStatusV1 {
	name, param := r.Constraint.Serialize()
	v := api.ConstraintStatusV1{
		Name:      name,
		Param:     param,
		Satisfied: r.Status.Satisfied,
		Mutations: r.Status.Mutations,
	}
	if r.Status.WrongPairs != nil {
		v.WrongPairs = append([]int(nil), r.Status.WrongPairs...)
		v.Highlight = constraint.Highlight(r.Status.WrongPairs)
	}
	return v
}

// ToAPIEvaluation converts an evaluation report to the stable wire schema.
func ToAPIEvaluation(rep *evaluate.Report) api.EvaluationV1 {
	v := api.EvaluationV1{
		PuzzleID:    rep.PuzzleID,
		Title:       rep.Title,
		Engine:      rep.Engine,
		Satisfied:   rep.Satisfied,
		States:      make([]api.StateV1, 0, len(rep.States)),
		Constraints: make([]api.ConstraintStatusV1, 0, len(rep.Results)),
	}
	for _, st := range rep.States {
		v.States = append(v.States, api.StateV1{
			Index:     st.Index,
			Sequence:  st.TargetSequence.String(),
			Structure: dotBracketOn(st.Folded, st.TargetSequence),
			Target:    dotBracketOn(st.Target, st.TargetSequence),
			Score:     st.Score,
		})
	}
	for _, r := range rep.Results {
		v.Constraints = append(v.Constraints, ToAPIConstraint(r))
	}
	return v
}

func dotBracketOn(ss rna.SecStruct, seq rna.Sequence) string {
	s, err := ss.DotBracketOn(seq)
	if err != nil {
		return ss.DotBracket()
	}
	return s
}
