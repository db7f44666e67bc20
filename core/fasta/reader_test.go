package fasta

import (
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foldlab-core/rna"
)

const plain = `>hairpin first design
GGGAAA
CCC
; comment line
>duplex
GG&CC
`

func writeGz(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.fa.gz")
	fh, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(fh)
	_, err = gw.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, fh.Close())
	return path
}

func collect(t *testing.T, path string) []Record {
	t.Helper()
	var recs []Record
	err := StreamRecordsCtx(context.Background(), path, func(r Record) error {
		recs = append(recs, r)
		return nil
	})
	require.NoError(t, err)
	return recs
}

func TestStreamRecords_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.fa")
	require.NoError(t, os.WriteFile(path, []byte(plain), 0o644))

	recs := collect(t, path)
	require.Len(t, recs, 2)
	assert.Equal(t, "hairpin", recs[0].ID)
	assert.Equal(t, "GGGAAACCC", string(recs[0].Seq))
	assert.Equal(t, "duplex", recs[1].ID)

	seq, err := recs[1].Sequence()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, seq.Strands())
}

func TestStreamRecords_Gzip(t *testing.T) {
	recs := collect(t, writeGz(t, plain))
	require.Len(t, recs, 2)
	assert.Equal(t, "GG&CC", string(recs[1].Seq))
}

func TestStreamRecords_GzipByMagic(t *testing.T) {
	gz, err := os.ReadFile(writeGz(t, plain))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "in.fa")
	require.NoError(t, os.WriteFile(path, gz, 0o644))
	assert.Len(t, collect(t, path), 2)

	bad := filepath.Join(t.TempDir(), "bad.fa.gz")
	require.NoError(t, os.WriteFile(bad, []byte(plain), 0o644))
	err = StreamRecordsCtx(context.Background(), bad, func(Record) error { return nil })
	assert.ErrorContains(t, err, "gzip")
}

func TestStreamRecords_GzipStdin(t *testing.T) {
	gz, err := os.ReadFile(writeGz(t, plain))
	require.NoError(t, err)
	orig := os.Stdin
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdin = r
	defer func() { os.Stdin = orig }()
	go func() {
		_, _ = w.Write(gz)
		_ = w.Close()
	}()
	assert.Len(t, collect(t, "-"), 2)
}

func TestStreamRecords_Stdin(t *testing.T) {
	orig := os.Stdin
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	go func() {
		_, _ = io.WriteString(w, plain)
		_ = w.Close()
	}()

	recs, errc, err := StreamRecords(context.Background(), "-")
	require.NoError(t, err)
	n := 0
	for range recs {
		n++
	}
	assert.NoError(t, <-errc)
	assert.Equal(t, 2, n)
}

func TestStreamRecords_HeaderlessAndEmpty(t *testing.T) {
	var recs []Record
	err := StreamRecordsReader(context.Background(), strings.NewReader("ACGU\n"), func(r Record) error {
		recs = append(recs, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "", recs[0].ID)

	recs = nil
	err = StreamRecordsReader(context.Background(), strings.NewReader(">empty\n>x\nA\n"), func(r Record) error {
		recs = append(recs, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Empty(t, recs[0].Seq)
}

func TestStreamRecords_CancelledYieldsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n := 0
	err := StreamRecordsReader(ctx, strings.NewReader(plain), func(Record) error {
		n++
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}

func TestStreamRecords_MissingFile(t *testing.T) {
	_, _, err := StreamRecords(context.Background(), filepath.Join(t.TempDir(), "nope.fa"))
	assert.Error(t, err)
}

func TestRecordSequence_BadBase(t *testing.T) {
	_, err := Record{ID: "x", Seq: []byte("ACXG")}.Sequence()
	assert.ErrorIs(t, err, rna.ErrBadBase)
}
