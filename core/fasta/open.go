// core/fasta/open.go
package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

var gzipMagic = []byte{0x1f, 0x8b}

// source is an opened input, decompressed when needed. Closing it closes
// every layer, innermost first.
type source struct {
	io.Reader
	layers []io.Closer
}

func (s *source) Close() error {
	var first error
	for _, c := range s.layers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openReader opens path ("-" is stdin). Gzip input is recognized by its
// magic bytes, on stdin too, or by a .gz suffix.
func openReader(path string) (io.ReadCloser, error) {
	name := path
	var raw io.ReadCloser
	if path == "-" {
		name = "stdin"
		raw = io.NopCloser(os.Stdin)
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open fasta")
		}
		raw = fh
	}

	br := bufio.NewReaderSize(raw, 64<<10)
	src := &source{Reader: br, layers: []io.Closer{raw}}
	sig, _ := br.Peek(len(gzipMagic))
	if !bytes.Equal(sig, gzipMagic) && !strings.HasSuffix(path, ".gz") {
		return src, nil
	}
	gr, err := gzip.NewReader(br)
	if err != nil {
		_ = src.Close()
		return nil, errors.Wrapf(err, "gzip %s", name)
	}
	src.Reader = gr
	src.layers = append([]io.Closer{gr}, src.layers...)
	return src, nil
}
