package appshell

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExec_DefaultsToHelp(t *testing.T) {
	var got []string
	code := Exec(func(_ context.Context, argv []string, _, _ io.Writer) int {
		got = argv
		return 0
	}, nil, io.Discard, io.Discard)
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"--help"}, got)
}

func TestExec_PassesArgsAndCode(t *testing.T) {
	code := Exec(func(_ context.Context, argv []string, _, _ io.Writer) int {
		assert.Equal(t, []string{"fold", "-s", "GC"}, argv)
		return 3
	}, []string{"fold", "-s", "GC"}, io.Discard, io.Discard)
	assert.Equal(t, 3, code)
}

func TestNormalize(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	assert.Equal(t, 0, normalize(ctx, 0))
	cancel()
	assert.Equal(t, 130, normalize(ctx, 0))
	assert.Equal(t, 2, normalize(ctx, 2))
}
