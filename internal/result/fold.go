// internal/result/fold.go

// Package result holds the per-record outcome of a fold, shared by the
// pipeline that produces it and the writers that render it.
package result

import (
	"strings"

	"github.com/bebop/poly/checks"
	"github.com/pkg/errors"

	"foldlab-core/folding"
	"foldlab-core/rna"
)

// ErrTooLong rejects a record before its O(N^2) matrices are allocated.
var ErrTooLong = errors.New("sequence exceeds max_length")

// Fold is one folded record.
type Fold struct {
	SourceFile string
	SequenceID string
	// Index is the record's ordinal within SourceFile, used for stable sorting.
	Index     int
	Engine    string
	Sequence  rna.Sequence
	Structure rna.SecStruct
	Score     float64
	GC        float64
	// Err is a per-record input problem (bad base, too long). The record is
	// reported and the run continues.
	Err error
}

// FoldOne folds a single sequence with the length guard applied.
func FoldOne(folder folding.Folder, seq rna.Sequence, maxLen int) (Fold, error) {
	f := Fold{Engine: folder.Name(), Sequence: seq}
	if maxLen > 0 && seq.Len() > maxLen {
		return f, errors.Wrapf(ErrTooLong, "%d > %d", seq.Len(), maxLen)
	}
	ss, err := folder.FoldSequence(seq, folding.FoldOptions{TemperatureC: folding.DefaultTemperatureC})
	if err != nil {
		return f, errors.Wrap(err, "fold")
	}
	score, err := folder.ScoreStructures(seq, ss, folding.ScoreOptions{TemperatureC: folding.DefaultTemperatureC})
	if err != nil {
		return f, errors.Wrap(err, "score")
	}
	f.Structure = ss
	f.Score = score
	f.GC = GCContent(seq)
	return f, nil
}

// GCContent is the G+C fraction over bases, cut markers excluded.
func GCContent(seq rna.Sequence) float64 {
	bases := strings.ReplaceAll(seq.String(), string(rna.Cut), "")
	if bases == "" {
		return 0
	}
	return checks.GcContent(bases)
}

// DotBracket renders the fold with cut markers, or "" when nothing folded.
func (f Fold) DotBracket() string {
	if f.Structure.Len() == 0 {
		return ""
	}
	db, err := f.Structure.DotBracketOn(f.Sequence)
	if err != nil {
		return f.Structure.DotBracket()
	}
	return db
}
