package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foldlab-core/folding/nussinov"
	"foldlab-core/rna"
	"foldlab/internal/evaluate"
	"foldlab/internal/puzzlefile"
	"foldlab/internal/result"
	"foldlab/pkg/api"
)

func hairpinFold(t *testing.T) result.Fold {
	t.Helper()
	f, err := result.FoldOne(nussinov.New(), rna.MustParseSequence("GGGAAACCC"), 0)
	require.NoError(t, err)
	f.SequenceID = "hp"
	f.SourceFile = "in.fa"
	return f
}

func TestFormatFoldRowTSV(t *testing.T) {
	row := FormatFoldRowTSV(hairpinFold(t))
	assert.Equal(t, "in.fa\thp\tBasic\t9\t3\t3\t0.667\tGGGAAACCC\t(((...)))\t", row)
	assert.Equal(t, len(strings.Split(TSVHeader, "\t")), len(strings.Split(row, "\t")))
}

func TestFormatFoldRowTSV_Error(t *testing.T) {
	f := result.Fold{SequenceID: "x", Engine: "Basic", Sequence: rna.MustParseSequence("GGGG"), Err: errors.Wrap(result.ErrTooLong, "4 > 2")}
	row := FormatFoldRowTSV(f)
	assert.True(t, strings.HasSuffix(row, "\t\t4 > 2: sequence exceeds max_length"), row)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []result.Fold{hairpinFold(t)}))
	var got []api.FoldV1
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "(((...)))", got[0].Structure)
	assert.Equal(t, 3, got[0].Pairs)
}

func TestWriteText_Header(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, []result.Fold{hairpinFold(t)}, true))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, TSVHeader, lines[0])
}

func TestSortFolds(t *testing.T) {
	list := []result.Fold{
		{SourceFile: "b.fa", Index: 0},
		{SourceFile: "a.fa", Index: 2},
		{SourceFile: "a.fa", Index: 1},
	}
	SortFolds(list)
	assert.Equal(t, "a.fa", list[0].SourceFile)
	assert.Equal(t, 1, list[0].Index)
	assert.Equal(t, "b.fa", list[2].SourceFile)
}

func evalReport(t *testing.T, seq string) *evaluate.Report {
	t.Helper()
	p, err := puzzlefile.Parse([]byte(`
version: 1
id: hp
title: Hairpin
beginning: AAAAAAAAA
constraints: [[SHAPE, "0"], [MUTATION, "9"]]
states: [{secstruct: "(((...)))"}]
`))
	require.NoError(t, err)
	rep, err := evaluate.New(nussinov.New(), zerolog.Nop()).Run(p, []rna.Sequence{rna.MustParseSequence(seq)})
	require.NoError(t, err)
	return rep
}

func TestToAPIEvaluation(t *testing.T) {
	v := ToAPIEvaluation(evalReport(t, "GGAAAACCC"))
	assert.False(t, v.Satisfied)
	require.Len(t, v.States, 1)
	assert.Equal(t, "(((...)))", v.States[0].Target)
	require.Len(t, v.Constraints, 2)

	shape := v.Constraints[0]
	assert.Equal(t, "SHAPE", shape.Name)
	assert.False(t, shape.Satisfied)
	assert.NotEmpty(t, shape.Highlight)
	assert.Zero(t, len(shape.Highlight)%2)

	mut := v.Constraints[1]
	assert.Equal(t, "MUTATION", mut.Name)
	assert.Nil(t, mut.WrongPairs)
	assert.Equal(t, 5, mut.Mutations)
}

func TestWriteEvaluationText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEvaluationText(&buf, evalReport(t, "GGGAAACCC"), true))
	out := buf.String()
	assert.Contains(t, out, "# hp Hairpin engine=Basic SATISFIED")
	assert.Contains(t, out, "  folded  (((...)))")
	assert.Contains(t, out, EvalTSVHeader)
	assert.Contains(t, out, "hp\tSHAPE\t0\ttrue\t0\t\n")
	assert.NotContains(t, out, "diff")

	buf.Reset()
	require.NoError(t, WriteEvaluationText(&buf, evalReport(t, "GGAAAACCC"), false))
	assert.Contains(t, buf.String(), "UNSATISFIED")
	assert.Contains(t, buf.String(), "  diff    ")
	assert.NotContains(t, buf.String(), EvalTSVHeader)
}
