package cmdutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.fa", "b.fa", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte(">x\nGC\n"), 0o644))
	}

	got, err := ExpandInputs([]string{"-", filepath.Join(dir, "*.fa"), "plain.fa"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-", filepath.Join(dir, "a.fa"), filepath.Join(dir, "b.fa"), "plain.fa"}, got)

	_, err = ExpandInputs([]string{filepath.Join(dir, "*.fq")})
	assert.ErrorContains(t, err, "no input matched")

	_, err = ExpandInputs([]string{"[" + dir})
	assert.ErrorContains(t, err, "bad glob")
}
