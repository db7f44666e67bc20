package writers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foldlab-core/folding/nussinov"
	"foldlab-core/rna"
	"foldlab/internal/evaluate"
	"foldlab/internal/output"
	"foldlab/internal/puzzlefile"
	"foldlab/internal/result"
	"foldlab/internal/store"
	"foldlab/pkg/api"
)

func folds(t *testing.T) []result.Fold {
	t.Helper()
	var out []result.Fold
	for i, s := range []string{"GGGAAACCC", "AAAA"} {
		f, err := result.FoldOne(nussinov.New(), rna.MustParseSequence(s), 0)
		require.NoError(t, err)
		f.SourceFile = "in.fa"
		f.SequenceID = s
		f.Index = i
		out = append(out, f)
	}
	return out
}

func TestStartFoldWriter_TextSorted(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartFoldWriter(&buf, output.FormatText, true, true, 1)
	list := folds(t)
	in <- list[1]
	in <- list[0]
	close(in)
	require.NoError(t, <-done)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, output.TSVHeader, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "in.fa\tGGGAAACCC\t"), lines[1])
}

func TestStartFoldWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartFoldWriter(&buf, output.FormatJSON, false, false, 1)
	for _, f := range folds(t) {
		in <- f
	}
	close(in)
	require.NoError(t, <-done)

	var got []api.FoldV1
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestFoldJSONL_StreamsValidV1(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartFoldWriter(&buf, output.FormatJSONL, false, false, 2)
	for _, f := range folds(t) {
		in <- f
	}
	close(in)
	require.NoError(t, <-done)

	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	n := 0
	for sc.Scan() {
		n++
		var v api.FoldV1
		require.NoError(t, json.Unmarshal(sc.Bytes(), &v), "line %d", n)
		assert.Equal(t, "Basic", v.Engine)
	}
	assert.Equal(t, 2, n)
}

func TestUnknownFoldFormatError(t *testing.T) {
	var b bytes.Buffer
	in, done := StartFoldWriter(&b, "fasta", false, false, 1)
	in <- result.Fold{}
	close(in)
	err := <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown fold format")
}

func TestWriteReport(t *testing.T) {
	p, err := puzzlefile.Parse([]byte("version: 1\nid: hp\nconstraints: [[SHAPE, '0']]\nstates: [{secstruct: '(((...)))'}]\n"))
	require.NoError(t, err)
	rep, err := evaluate.New(nussinov.New(), zerolog.Nop()).Run(p, []rna.Sequence{rna.MustParseSequence("GGGAAACCC")})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, output.FormatJSONL, false, rep))
	var v api.EvaluationV1
	require.NoError(t, json.Unmarshal(buf.Bytes(), &v))
	assert.True(t, v.Satisfied)

	err = WriteReport(&buf, "yaml", false, rep)
	assert.Contains(t, err.Error(), "unknown evaluation format")
}

func TestWriteDesigns(t *testing.T) {
	list := []store.Design{
		{ID: "id1", PuzzleID: "hp", Sequence: "GGGAAACCC", Structure: "(((...)))", Score: 3, GC: 0.667, Satisfied: true,
			CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		{ID: "id2", Sequence: "AAAA", Structure: "...."},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDesigns(&buf, output.FormatText, true, list))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, output.DesignTSVHeader, lines[0])
	assert.Equal(t, "id1\thp\ttrue\t3\t0.667\t2024-05-01T12:00:00Z\tGGGAAACCC\t(((...)))", lines[1])

	buf.Reset()
	require.NoError(t, WriteDesigns(&buf, output.FormatJSONL, false, list))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))

	buf.Reset()
	require.NoError(t, WriteDesigns(&buf, output.FormatJSON, false, nil))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))

	err := WriteDesigns(&buf, "csv", false, list)
	assert.Contains(t, err.Error(), "unknown design format")
}

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, IsBrokenPipe(syscall.EPIPE))
	assert.True(t, IsBrokenPipe(errors.Wrap(io.ErrClosedPipe, "write")))
	assert.False(t, IsBrokenPipe(nil))
	assert.False(t, IsBrokenPipe(io.EOF))
}
