// internal/writers/fold.go
package writers

import (
	"io"

	"foldlab/internal/output"
	"foldlab/internal/result"
)

type foldArgs struct {
	Sort   bool
	Header bool
	In     <-chan result.Fold
}

func drainFolds(ch <-chan result.Fold) []result.Fold {
	list := make([]result.Fold, 0, 128)
	for f := range ch {
		list = append(list, f)
	}
	return list
}

func init() {
	// JSON array
	RegisterFold(output.FormatJSON, func(w io.Writer, payload interface{}) error {
		args := payload.(foldArgs)
		list := drainFolds(args.In)
		if args.Sort {
			output.SortFolds(list)
		}
		return output.WriteJSON(w, list)
	})

	// JSONL streaming; --sort buffers first
	RegisterFold(output.FormatJSONL, func(w io.Writer, payload interface{}) error {
		args := payload.(foldArgs)
		pipe, done := StartFoldJSONLWriter(w, 64)
		if args.Sort {
			list := drainFolds(args.In)
			output.SortFolds(list)
			for _, f := range list {
				pipe <- f
			}
		} else {
			for f := range args.In {
				pipe <- f
			}
		}
		close(pipe)
		return <-done
	})

	// TEXT/TSV
	RegisterFold(output.FormatText, func(w io.Writer, payload interface{}) error {
		args := payload.(foldArgs)
		if args.Sort {
			list := drainFolds(args.In)
			output.SortFolds(list)
			return output.WriteText(w, list, args.Header)
		}
		return output.StreamText(w, args.In, args.Header)
	})
}

// StartFoldWriter spins up a writer goroutine for folds. Close the returned
// channel when done, then read the single error value.
func StartFoldWriter(out io.Writer, format string, sort, header bool, bufSize int) (chan<- result.Fold, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan result.Fold, bufSize)
	errCh := make(chan error, 1)
	go func() {
		err := WriteFold(format, out, foldArgs{Sort: sort, Header: header, In: in})
		if err != nil {
			// keep the producer from blocking on a writer that gave up
			for range in {
			}
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()
	return in, errCh
}
