package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foldlab-core/folding"
	"foldlab-core/folding/nussinov"
	"foldlab-core/rna"
	"foldlab/internal/foldcache"
	"foldlab/internal/result"
)

// Compile-time check: the DP engine satisfies the contract the pipeline uses.
var _ folding.Folder = (*nussinov.Engine)(nil)

// countingFolder wraps a folder and counts folds.
type countingFolder struct {
	folding.Folder
	n atomic.Int64
}

func (c *countingFolder) FoldSequence(seq rna.Sequence, opt folding.FoldOptions) (rna.SecStruct, error) {
	c.n.Add(1)
	return c.Folder.FoldSequence(seq, opt)
}

func writeFasta(t *testing.T, body string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "in.fa")
	require.NoError(t, os.WriteFile(fn, []byte(body), 0o644))
	return fn
}

func TestForEachFold(t *testing.T) {
	fn := writeFasta(t, ">hp\nGGGAAACCC\n>flat\nAAAA\n>bad\nACXG\n>long\nGGGGGGGGGGCCCCCCCCCC\n")
	var got []result.Fold
	err := ForEachFold(context.Background(), Config{Threads: 3, MaxLength: 12}, []string{fn}, nussinov.New(), func(f result.Fold) error {
		got = append(got, f)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 4)
	sort.Slice(got, func(i, j int) bool { return got[i].Index < got[j].Index })

	assert.Equal(t, "hp", got[0].SequenceID)
	assert.Equal(t, "(((...)))", got[0].DotBracket())
	assert.Equal(t, 3.0, got[0].Score)
	assert.InDelta(t, 6.0/9.0, got[0].GC, 1e-9)
	assert.Equal(t, fn, got[0].SourceFile)
	assert.Equal(t, "Basic", got[0].Engine)

	assert.Equal(t, "....", got[1].DotBracket())
	assert.NoError(t, got[1].Err)

	assert.True(t, errors.Is(got[2].Err, rna.ErrBadBase))
	assert.True(t, errors.Is(got[3].Err, result.ErrTooLong))
}

func TestForEachFold_TooLongSkipsFolding(t *testing.T) {
	fn := writeFasta(t, ">a\nGGGAAACCC\n>b\nGGGGAAAACCCC\n")
	cf := &countingFolder{Folder: nussinov.New()}
	err := ForEachFold(context.Background(), Config{Threads: 1, MaxLength: 10}, []string{fn}, cf, func(result.Fold) error { return nil })
	require.NoError(t, err)
	assert.EqualValues(t, 1, cf.n.Load())
}

func TestForEachFold_CacheSkipsRepeats(t *testing.T) {
	fn := writeFasta(t, ">a\nGGGAAACCC\n>b\nGGGAAACCC\n>c\nGGAAACC\n>d\nGGGAAACCC\n")
	cf := &countingFolder{Folder: nussinov.New()}
	cache := foldcache.New[string, result.Fold](16)
	var got []result.Fold
	err := ForEachFold(context.Background(), Config{Threads: 1, Cache: cache}, []string{fn}, cf, func(f result.Fold) error {
		got = append(got, f)
		return nil
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, cf.n.Load())
	require.Len(t, got, 4)
	sort.Slice(got, func(i, j int) bool { return got[i].Index < got[j].Index })
	assert.Equal(t, "d", got[3].SequenceID)
	assert.Equal(t, 3, got[3].Index)
	assert.Equal(t, "(((...)))", got[3].DotBracket())
	hits, _ := cache.Stats()
	assert.Equal(t, 2, hits)
}

func TestForEachFold_VisitErrorStops(t *testing.T) {
	fn := writeFasta(t, ">a\nGC\n>b\nGC\n>c\nGC\n")
	boom := errors.New("boom")
	err := ForEachFold(context.Background(), Config{Threads: 2}, []string{fn}, nussinov.New(), func(result.Fold) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestForEachFold_MissingFileReported(t *testing.T) {
	fn := writeFasta(t, ">a\nGC\n")
	n := 0
	err := ForEachFold(context.Background(), Config{Threads: 1}, []string{filepath.Join(t.TempDir(), "nope.fa"), fn}, nussinov.New(), func(result.Fold) error {
		n++
		return nil
	})
	assert.Error(t, err)
	assert.Equal(t, 1, n)
}

func TestForEachFold_Cancelled(t *testing.T) {
	fn := writeFasta(t, ">a\nGC\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ForEachFold(ctx, Config{Threads: 1}, []string{fn}, nussinov.New(), func(result.Fold) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
