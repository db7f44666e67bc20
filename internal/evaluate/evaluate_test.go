package evaluate

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foldlab-core/constraint"
	"foldlab-core/folding/nussinov"
	"foldlab-core/rna"
	"foldlab/internal/puzzlefile"
)

func mustPuzzle(t *testing.T, doc string) *puzzlefile.File {
	t.Helper()
	f, err := puzzlefile.Parse([]byte(doc))
	require.NoError(t, err)
	return f
}

func TestRun_HairpinSatisfied(t *testing.T) {
	p := mustPuzzle(t, `
version: 1
id: hp
beginning: AAAAAAAAA
constraints: [[SHAPE, "0"], [MUTATION, "6"]]
states: [{secstruct: "(((...)))"}]
`)
	rep, err := New(nussinov.New(), zerolog.Nop()).Run(p, []rna.Sequence{rna.MustParseSequence("GGGAAACCC")})
	require.NoError(t, err)
	assert.True(t, rep.Satisfied)
	assert.Equal(t, "Basic", rep.Engine)
	require.Len(t, rep.States, 1)
	assert.Equal(t, "(((...)))", rep.States[0].Folded.DotBracket())
	assert.Equal(t, 3.0, rep.States[0].Score)

	require.Len(t, rep.Results, 2)
	assert.Equal(t, constraint.KindShape, rep.Results[0].Status.Kind)
	for _, v := range rep.Results[0].Status.WrongPairs {
		assert.Equal(t, -1, v)
	}
	assert.Equal(t, 6, rep.Results[1].Status.Mutations)
}

func TestRun_Unsatisfied(t *testing.T) {
	p := mustPuzzle(t, `
version: 1
id: hp
beginning: AAAAAAAAA
constraints: [[SHAPE, "0"], [MUTATION, "2"]]
states: [{secstruct: "(((...)))"}]
`)
	rep, err := New(nussinov.New(), zerolog.Nop()).Run(p, []rna.Sequence{rna.MustParseSequence("AAAAAAAAA")})
	require.NoError(t, err)
	assert.False(t, rep.Satisfied)
	assert.False(t, rep.Results[0].Status.Satisfied)
	assert.True(t, rep.Results[1].Status.Satisfied)
	assert.Equal(t, []int{1, 1, 1, -1, -1, -1, 1, 1, 1}, rep.Results[0].Status.WrongPairs)
}

func TestRun_ReorderedStrands(t *testing.T) {
	// raw "GG&C" folds G0-C3; the target is written as "C&GG", where raw G0
	// sits at index 2
	p := mustPuzzle(t, `
version: 1
id: duplex
constraints: [[SHAPE, "0"]]
states:
  - secstruct: "(&)."
    target_oligo_order: [1, 0]
`)
	rep, err := New(nussinov.New(), zerolog.Nop()).Run(p, []rna.Sequence{rna.MustParseSequence("GG&C")})
	require.NoError(t, err)
	st := rep.States[0]
	assert.Equal(t, "C&GG", st.TargetSequence.String())
	db, err := st.Folded.DotBracketOn(st.TargetSequence)
	require.NoError(t, err)
	assert.Equal(t, "(&).", db)
	assert.True(t, rep.Satisfied)

	// the same target read in raw order does not match
	p.States[0].TargetOligoOrder = nil
	rep, err = New(nussinov.New(), zerolog.Nop()).Run(p, []rna.Sequence{rna.MustParseSequence("GG&C")})
	require.NoError(t, err)
	assert.False(t, rep.Satisfied)
}

func TestRun_PerStateSequences(t *testing.T) {
	p := mustPuzzle(t, `
version: 1
id: two
constraints: [[SHAPE, "0"], [SHAPE, "1"]]
states: [{secstruct: "(((...)))"}, {secstruct: "........."}]
`)
	ev := New(nussinov.New(), zerolog.Nop())
	rep, err := ev.Run(p, []rna.Sequence{rna.MustParseSequence("GGGAAACCC"), rna.MustParseSequence("AAAAAAAAA")})
	require.NoError(t, err)
	assert.True(t, rep.Satisfied)

	_, err = ev.Run(p, []rna.Sequence{rna.MustParseSequence("A"), rna.MustParseSequence("A"), rna.MustParseSequence("A")})
	assert.True(t, errors.Is(err, ErrStateCount))
}

func TestRun_Errors(t *testing.T) {
	ev := New(nussinov.New(), zerolog.Nop())

	p := mustPuzzle(t, "version: 1\nid: x\nstates: [{secstruct: '(((...)))'}]\n")
	_, err := ev.Run(p, []rna.Sequence{rna.MustParseSequence("GGGAAA")})
	assert.True(t, errors.Is(err, rna.ErrLengthMismatch))

	p = mustPuzzle(t, "version: 1\nid: x\nconstraints: [[MUTATION, '1']]\nstates: [{secstruct: '...'}]\n")
	_, err = ev.Run(p, []rna.Sequence{rna.MustParseSequence("AAA")})
	assert.True(t, errors.Is(err, constraint.ErrMissingMetadata))
}
