// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// Reuse a 64 KiB buffered writer across JSONL writers to avoid per-writer mallocs.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Start spins up a JSONL encoder goroutine for domain values T, written as
// their wire form W.
//   - toWire: converts one value to its wire type
//   - isBroken: recognizer for broken/closed pipe errors to suppress them
//
// After an encode error the goroutine keeps draining the input so the
// producer never blocks; the first error is reported on done.
func Start[T, W any](out io.Writer, bufSize int, toWire func(T) W, isBroken func(error) bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		enc := json.NewEncoder(bw)
		var err error
		for v := range in {
			if err != nil {
				continue
			}
			if encErr := enc.Encode(toWire(v)); encErr != nil {
				err = errors.Wrap(encErr, "jsonl encode")
			}
		}
		if err == nil {
			if ferr := bw.Flush(); ferr != nil {
				err = errors.Wrap(ferr, "jsonl flush")
			}
		}
		if isBroken(err) {
			err = nil
		}
		done <- err
	}()

	return in, done
}
