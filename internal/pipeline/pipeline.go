// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"foldlab-core/fasta"
	"foldlab-core/folding"
	"foldlab-core/rna"
	"foldlab/internal/foldcache"
	"foldlab/internal/result"
)

// Config controls the folding pipeline.
type Config struct {
	Threads   int // number of worker goroutines (>=1)
	MaxLength int // per-record length guard; 0 disables it
	Logger    zerolog.Logger
	// Cache memoizes folds of repeated sequences across workers; nil disables it.
	Cache *foldcache.Cache[string, result.Fold]
}

// ForEachFold folds every record of seqFiles on cfg.Threads workers and
// calls visit from a single collector goroutine. Results arrive in
// completion order. Cancellation is checked between records; a fold that
// has started runs to completion. It returns the first error from opening
// or scanning a file or from visit, or ctx.Err().
func ForEachFold(
	ctx context.Context,
	cfg Config,
	seqFiles []string,
	folder folding.Folder,
	visit func(result.Fold) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	log := cfg.Logger

	type job struct {
		rec        fasta.Record
		sourceFile string
		index      int
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan result.Fold, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					var f result.Fold
					seq, err := j.rec.Sequence()
					if err == nil {
						f, err = foldCached(cfg.Cache, folder, seq, cfg.MaxLength)
					}
					f.Engine = folder.Name()
					f.SourceFile = j.sourceFile
					f.SequenceID = j.rec.ID
					f.Index = j.index
					if err != nil {
						log.Warn().Err(err).Str("file", j.sourceFile).Str("id", j.rec.ID).Msg("record skipped")
						f.Err = err
					}
					select {
					case results <- f:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for f := range results {
			if cerr != nil {
				continue
			}
			if err := visit(f); err != nil {
				cerr = err
			}
		}
	}()

	// Feed work
	var ferr error
feed:
	for _, fa := range seqFiles {
		idx := 0
		err := fasta.StreamRecordsCtx(ctx, fa, func(rec fasta.Record) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- job{rec: rec, sourceFile: fa, index: idx}:
				idx++
				return nil
			}
		})
		log.Debug().Str("file", fa).Int("records", idx).Msg("input scanned")
		if err != nil {
			if ctx.Err() != nil {
				break feed
			}
			// Keep scanning other files; first error will be returned.
			if ferr == nil {
				ferr = err
			}
			log.Error().Err(err).Str("file", fa).Msg("input failed")
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if cfg.Cache != nil {
		hits, misses := cfg.Cache.Stats()
		log.Debug().Int("hits", hits).Int("misses", misses).Msg("fold cache")
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if cerr != nil {
		return cerr
	}
	return ferr
}

// foldCached folds seq unless an identical sequence was folded before.
// Failed folds are not cached.
func foldCached(c *foldcache.Cache[string, result.Fold], folder folding.Folder, seq rna.Sequence, maxLen int) (result.Fold, error) {
	key := seq.String()
	if f, ok := c.Get(key); ok {
		f.Structure = f.Structure.Clone()
		return f, nil
	}
	f, err := result.FoldOne(folder, seq, maxLen)
	if err == nil {
		c.Add(key, f)
	}
	return f, err
}
