package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foldlab-core/folding/nussinov"
	"foldlab-core/rna"
)

func TestFoldOne(t *testing.T) {
	f, err := FoldOne(nussinov.New(), rna.MustParseSequence("GG&CC"), 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, f.Score)
	assert.Equal(t, "((&))", f.DotBracket())
	assert.Equal(t, 1.0, f.GC)
	assert.Equal(t, "Basic", f.Engine)
}

func TestFoldOne_TooLong(t *testing.T) {
	_, err := FoldOne(nussinov.New(), rna.MustParseSequence("GGGAAACCC"), 8)
	assert.True(t, errors.Is(err, ErrTooLong))
}

func TestGCContent(t *testing.T) {
	assert.Equal(t, 0.0, GCContent(nil))
	assert.Equal(t, 0.5, GCContent(rna.MustParseSequence("GA&UC")))
	assert.Equal(t, 0.0, GCContent(rna.MustParseSequence("&")))
}

func TestDotBracket_Empty(t *testing.T) {
	assert.Equal(t, "", Fold{}.DotBracket())
}
