// core/folding/registry.go
package folding

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUnknownEngine = errors.New("unknown folding engine")
	ErrNotFunctional = errors.New("folding engine not functional")
)

// Factory builds an engine. It may block (loading parameter files, starting
// helper processes) and should honor ctx.
type Factory func(ctx context.Context) (Folder, error)

// Result is what CreateAsync delivers.
type Result struct {
	Folder Folder
	Err    error
}

// Registry maps engine names to factories. The zero value is not usable;
// call NewRegistry.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds or replaces (last wins) the factory for name.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Names lists registered engines, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for n := range r.factories {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Create builds the engine registered under name.
func (r *Registry) Create(ctx context.Context, name string) (Folder, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownEngine, "%q (have %v)", name, r.Names())
	}
	fd, err := f(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", name)
	}
	if !fd.IsFunctional() {
		return nil, errors.Wrapf(ErrNotFunctional, "%s", name)
	}
	return fd, nil
}

// CreateAsync starts building name in the background. The channel receives
// exactly one Result and is then closed.
func (r *Registry) CreateAsync(ctx context.Context, name string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		fd, err := r.Create(ctx, name)
		out <- Result{Folder: fd, Err: err}
	}()
	return out
}

// CreateAll builds several engines concurrently. On the first failure the
// remaining factories see a cancelled context.
func (r *Registry) CreateAll(ctx context.Context, names ...string) (map[string]Folder, error) {
	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	out := make(map[string]Folder, len(names))
	for _, name := range names {
		name := name
		g.Go(func() error {
			fd, err := r.Create(gctx, name)
			if err != nil {
				return err
			}
			mu.Lock()
			out[name] = fd
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
