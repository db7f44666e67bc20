// Package evaluate folds every state of a puzzle and scores the design
// against the puzzle's constraints.
package evaluate

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"foldlab-core/constraint"
	"foldlab-core/folding"
	"foldlab-core/oligo"
	"foldlab-core/rna"
	"foldlab/internal/puzzlefile"
)

// ErrStateCount is returned when the number of sequences fits neither one
// shared design nor one per state.
var ErrStateCount = errors.New("sequence count does not match puzzle states")

// StateResult is one folded state.
type StateResult struct {
	Index    int
	Sequence rna.Sequence // raw order
	// TargetSequence, Folded and Target share target order: Folded is the
	// natural fold re-expressed there.
	TargetSequence rna.Sequence
	Folded         rna.SecStruct
	Target         rna.SecStruct
	Score          float64
}

// Report is the outcome of one evaluation.
type Report struct {
	PuzzleID  string
	Title     string
	Engine    string
	States    []StateResult
	Results   []constraint.Result
	Satisfied bool
}

// Evaluator binds a folder to puzzles.
type Evaluator struct {
	folder folding.Folder
	log    zerolog.Logger
}

// New returns an Evaluator. The zero zerolog.Logger discards everything.
func New(folder folding.Folder, log zerolog.Logger) *Evaluator {
	return &Evaluator{folder: folder, log: log}
}

// Run folds each state and evaluates the puzzle's constraints. seqs holds
// either one design shared by all states or one sequence per state.
func (e *Evaluator) Run(p *puzzlefile.File, seqs []rna.Sequence) (*Report, error) {
	set, err := p.ConstraintSet()
	if err != nil {
		return nil, err
	}
	puzzle, err := p.Puzzle()
	if err != nil {
		return nil, err
	}
	tcs := p.TargetConditions()
	perState, err := spread(seqs, len(tcs))
	if err != nil {
		return nil, err
	}

	rep := &Report{PuzzleID: p.ID, Title: p.Title, Engine: e.folder.Name()}
	states := make([]constraint.State, len(tcs))
	for i, tc := range tcs {
		st, res, err := e.foldState(i, perState[i], tc)
		if err != nil {
			return nil, errors.Wrapf(err, "state %d", i)
		}
		states[i] = st
		rep.States = append(rep.States, res)
		e.log.Debug().Int("state", i).Str("folded", res.Folded.DotBracket()).Float64("score", res.Score).Msg("state folded")
	}

	ctx := &constraint.Context{States: states, Puzzle: puzzle, TargetConditions: tcs}
	results, ok, err := set.EvaluateAll(ctx)
	if err != nil {
		return nil, err
	}
	rep.Results = results
	rep.Satisfied = ok
	return rep, nil
}

func spread(seqs []rna.Sequence, n int) ([]rna.Sequence, error) {
	switch len(seqs) {
	case n:
		return seqs, nil
	case 1:
		out := make([]rna.Sequence, n)
		for i := range out {
			out[i] = seqs[0]
		}
		return out, nil
	}
	return nil, errors.Wrapf(ErrStateCount, "%d sequences for %d states", len(seqs), n)
}

// foldState folds raw in the state's natural strand order.
func (e *Evaluator) foldState(i int, raw rna.Sequence, tc *constraint.TargetConditions) (constraint.State, StateResult, error) {
	pk := tc.Pseudoknotted()
	target, err := rna.ParseDotBracket(tc.SecStruct, pk)
	if err != nil {
		return constraint.State{}, StateResult{}, errors.Wrap(err, "target structure")
	}
	if target.Len() != raw.Len() {
		return constraint.State{}, StateResult{}, errors.Wrapf(rna.ErrLengthMismatch, "sequence %d, target %d", raw.Len(), target.Len())
	}

	layout := oligo.LayoutOf(raw)
	naturalMap, err := layout.IndexMap(tc.OligoOrder)
	if err != nil {
		return constraint.State{}, StateResult{}, errors.Wrap(err, "oligo order")
	}
	targetMap, err := layout.IndexMap(tc.TargetOligoOrder)
	if err != nil {
		return constraint.State{}, StateResult{}, errors.Wrap(err, "target oligo order")
	}
	natural, err := oligo.ApplySequence(raw, naturalMap)
	if err != nil {
		return constraint.State{}, StateResult{}, err
	}

	pairs, err := e.folder.FoldSequence(natural, folding.FoldOptions{
		Desired:       tc.SecStruct,
		Pseudoknotted: pk,
		TemperatureC:  folding.DefaultTemperatureC,
	})
	if err != nil {
		return constraint.State{}, StateResult{}, errors.Wrap(err, "fold")
	}
	score, err := e.folder.ScoreStructures(natural, pairs, folding.ScoreOptions{Pseudoknotted: pk, TemperatureC: folding.DefaultTemperatureC})
	if err != nil {
		return constraint.State{}, StateResult{}, errors.Wrap(err, "score")
	}
	aligned, err := oligo.TargetAlignedNaturalPairs(pairs.Pairs(), naturalMap, targetMap)
	if err != nil {
		return constraint.State{}, StateResult{}, err
	}
	folded, err := rna.SecStructFromPairs(aligned)
	if err != nil {
		return constraint.State{}, StateResult{}, err
	}
	targetSeq, err := oligo.ApplySequence(raw, targetMap)
	if err != nil {
		return constraint.State{}, StateResult{}, err
	}

	st := constraint.State{
		Sequence:     raw,
		NaturalPairs: pairs,
		TargetPairs:  target,
		NaturalMap:   naturalMap,
		TargetMap:    targetMap,
		Conditions:   tc,
	}
	return st, StateResult{
		Index:          i,
		Sequence:       raw,
		TargetSequence: targetSeq,
		Folded:         folded,
		Target:         target,
		Score:          score,
	}, nil
}
