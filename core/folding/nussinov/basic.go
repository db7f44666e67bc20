// Package nussinov implements the "Basic" folding engine: maximum base
// pairing by dynamic programming with explicit traceback.
//
// Scores are integer pair counts, not energies. Temperature, hints and the
// pseudoknot flag are accepted and ignored.
package nussinov

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"foldlab-core/folding"
	"foldlab-core/rna"
)

// Name is the registry name of this engine.
const Name = "Basic"

// Trace tags stored in the trace matrix. A negative value -k means the span
// splits at k into (i,k) and (k+1,j).
const (
	traceNone      = 0
	tracePair      = 1
	traceSkipRight = 2 // i unpaired: continue with (i+1, j)
	traceSkipLeft  = 3 // j unpaired: continue with (i, j-1)
)

// Engine is stateless and safe for concurrent use.
type Engine struct {
	log zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes DP invariant warnings to l (debug level).
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New returns a ready engine.
func New(opts ...Option) *Engine {
	e := &Engine{log: zerolog.Nop()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Factory returns a folding.Factory building engines with opts. Nothing to
// load, so it never blocks.
func Factory(opts ...Option) folding.Factory {
	return func(ctx context.Context) (folding.Folder, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return New(opts...), nil
	}
}

// Register adds the engine to r under Name.
func Register(r *folding.Registry, opts ...Option) {
	r.Register(Name, Factory(opts...))
}

func (e *Engine) Name() string       { return Name }
func (e *Engine) IsFunctional() bool { return true }

// ScoreStructures counts base pairs (each pair once).
func (e *Engine) ScoreStructures(seq rna.Sequence, pairs rna.SecStruct, _ folding.ScoreOptions) (float64, error) {
	if pairs.Len() != seq.Len() {
		return 0, errors.Wrapf(rna.ErrLengthMismatch, "score: sequence %d, pairs %d", seq.Len(), pairs.Len())
	}
	score := 0
	for i := 0; i < pairs.Len(); i++ {
		if pairs.PairingPartner(i) > i {
			score++
		}
	}
	return float64(score), nil
}

// FoldSequence returns a maximum-pairing structure for seq.
func (e *Engine) FoldSequence(seq rna.Sequence, _ folding.FoldOptions) (rna.SecStruct, error) {
	n := seq.Len()
	pairs := rna.NewSecStruct(n)
	if n == 0 {
		return pairs, nil
	}
	dp, trace := e.fill(seq)
	traceback(trace, pairs)
	if e.log.GetLevel() <= zerolog.DebugLevel {
		e.log.Debug().Int("n", n).Int("pairs", dp.At(0, n-1)).Msg("basic fold")
	}
	return pairs, nil
}

// fill runs the DP over increasing span lengths.
func (e *Engine) fill(seq rna.Sequence) (dp, trace *Matrix) {
	n := seq.Len()
	dp = NewMatrix(n)
	trace = NewMatrix(n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			switch {
			case i == j, i+1 == j, i == j+1:
				dp.Set(i, j, 0)
			default:
				// i > j+1 is an invalid span; i < j-1 is filled below
				dp.Set(i, j, -1)
			}
		}
	}

	for span := 1; span < n; span++ {
		for i, j := 0, span; j < n; i, j = i+1, j+1 {
			best, tag := e.cell(seq, dp, i, j)
			dp.Set(i, j, best)
			trace.Set(i, j, tag)
		}
	}
	return dp, trace
}

// cell picks the best score and trace tag for span (i, j). Every neighbour
// read must already be filled; a negative one is logged.
func (e *Engine) cell(seq rna.Sequence, dp *Matrix, i, j int) (best, tag int) {
	n := seq.Len()
	best, tag = -1, traceNone

	if i < j-1 && rna.CanPair(seq.At(i), seq.At(j)) {
		inner := dp.At(i+1, j-1)
		if inner < 0 {
			e.warn("pair", i, j)
		}
		if v := inner + 1; v > best {
			best, tag = v, tracePair
		}
	}

	v := dp.At(i, j-1)
	if v < 0 {
		e.warn("skip-left", i, j)
	}
	if v > best {
		best, tag = v, traceSkipLeft
	}

	if i < n-1 {
		v := dp.At(i+1, j)
		if v < 0 {
			e.warn("skip-right", i, j)
		}
		if v > best {
			best, tag = v, traceSkipRight
		}
	}

	for k := i + 1; k < j; k++ {
		l, r := dp.At(i, k), dp.At(k+1, j)
		if l < 0 || r < 0 {
			e.log.Debug().Str("case", "bifurcation").Int("i", i).Int("j", j).Int("k", k).Msg("unexpected negative DP cell")
		}
		if v := l + r; v > best {
			best, tag = v, -k
		}
	}
	return best, tag
}

func (e *Engine) warn(kind string, i, j int) {
	e.log.Debug().Str("case", kind).Int("i", i).Int("j", j).Msg("unexpected negative DP cell")
}

// traceback walks trace from (0, n-1) with an explicit stack.
func traceback(trace *Matrix, pairs rna.SecStruct) {
	type span struct{ i, j int }
	stack := []span{{0, trace.Size() - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.i < 0 || s.j < 0 || s.i >= trace.Size() || s.j >= trace.Size() {
			continue
		}
		switch tag := trace.At(s.i, s.j); {
		case tag == tracePair:
			pairs.SetPairingPartner(s.i, s.j)
			stack = append(stack, span{s.i + 1, s.j - 1})
		case tag == traceSkipRight:
			stack = append(stack, span{s.i + 1, s.j})
		case tag == traceSkipLeft:
			stack = append(stack, span{s.i, s.j - 1})
		case tag < 0:
			k := -tag
			stack = append(stack, span{k + 1, s.j}, span{s.i, k})
		}
	}
}
