// core/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/pkg/errors"

	"foldlab-core/rna"
)

// Record is one FASTA entry. Seq holds the raw residues with line breaks and
// surrounding whitespace removed.
type Record struct {
	ID  string
	Seq []byte
}

// Sequence parses the record's residues as RNA (T reads as U, '&' is a cut).
func (r Record) Sequence() (rna.Sequence, error) {
	s, err := rna.ParseSequence(string(r.Seq))
	if err != nil {
		return nil, errors.Wrapf(err, "record %s", r.ID)
	}
	return s, nil
}

// StreamRecordsCtx opens path ("-" for stdin, gzip detected) and calls emit
// once per record. Cancellation is checked between lines. emit may return an
// error to stop early; that error is returned unchanged.
func StreamRecordsCtx(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	return StreamRecordsReader(ctx, rc, emit)
}

// StreamRecordsReader is StreamRecordsCtx over an already open reader.
func StreamRecordsReader(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		id     string
		seq    = make([]byte, 0, 4096)
		inside bool
	)
	flush := func() error {
		if !inside {
			return nil
		}
		return emit(Record{ID: id, Seq: append([]byte(nil), seq...)})
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			seq = seq[:0]
			id = parseHeaderID(line[1:])
			inside = true
			continue
		}
		if line[0] == ';' {
			continue
		}
		// residues before any header form an anonymous record
		inside = true
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "fasta scan")
	}
	return flush()
}

// StreamRecords is the channel form of StreamRecordsCtx. The open error for a
// named file is reported immediately; scan errors arrive on the error
// channel, which receives at most one value and is then closed.
func StreamRecords(ctx context.Context, path string) (<-chan Record, <-chan error, error) {
	if path != "-" {
		rc, err := openReader(path)
		if err != nil {
			return nil, nil, err
		}
		_ = rc.Close()
	}

	out := make(chan Record, 8)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		err := StreamRecordsCtx(ctx, path, func(r Record) error {
			select {
			case out <- r:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			errc <- err
		}
	}()
	return out, errc, nil
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
