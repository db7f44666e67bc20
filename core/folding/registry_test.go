package folding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foldlab-core/rna"
)

type stubFolder struct {
	name       string
	functional bool
}

func (s stubFolder) Name() string       { return s.name }
func (s stubFolder) IsFunctional() bool { return s.functional }
func (s stubFolder) ScoreStructures(seq rna.Sequence, pairs rna.SecStruct, _ ScoreOptions) (float64, error) {
	return float64(pairs.NumPairs()), nil
}
func (s stubFolder) FoldSequence(seq rna.Sequence, _ FoldOptions) (rna.SecStruct, error) {
	return rna.NewSecStruct(seq.Len()), nil
}

func stubFactory(name string, functional bool) Factory {
	return func(ctx context.Context) (Folder, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return stubFolder{name: name, functional: functional}, nil
	}
}

func TestRegistry_CreateAndNames(t *testing.T) {
	r := NewRegistry()
	r.Register("Zeta", stubFactory("Zeta", true))
	r.Register("Alpha", stubFactory("Alpha", true))
	assert.Equal(t, []string{"Alpha", "Zeta"}, r.Names())

	fd, err := r.Create(context.Background(), "Alpha")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", fd.Name())

	_, err = r.Create(context.Background(), "Nope")
	assert.True(t, errors.Is(err, ErrUnknownEngine))
}

func TestRegistry_RejectsNonFunctional(t *testing.T) {
	r := NewRegistry()
	r.Register("Broken", stubFactory("Broken", false))
	_, err := r.Create(context.Background(), "Broken")
	assert.True(t, errors.Is(err, ErrNotFunctional))
}

func TestRegistry_CreateAsync(t *testing.T) {
	r := NewRegistry()
	r.Register("A", stubFactory("A", true))
	res := <-r.CreateAsync(context.Background(), "A")
	require.NoError(t, res.Err)
	assert.Equal(t, "A", res.Folder.Name())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res = <-r.CreateAsync(ctx, "A")
	assert.True(t, errors.Is(res.Err, context.Canceled))
}

func TestRegistry_CreateAll(t *testing.T) {
	r := NewRegistry()
	r.Register("A", stubFactory("A", true))
	r.Register("B", stubFactory("B", true))
	got, err := r.CreateAll(context.Background(), "A", "B")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = r.CreateAll(context.Background(), "A", "missing")
	assert.True(t, errors.Is(err, ErrUnknownEngine))
}
