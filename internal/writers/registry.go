// internal/writers/registry.go
package writers

import (
	"io"

	"github.com/pkg/errors"
)

// Writer registries (format → handler). Registered in init() blocks of the
// fold, evaluation and design writer files.
var (
	FoldWriters       = map[string]func(w io.Writer, data interface{}) error{}
	EvaluationWriters = map[string]func(w io.Writer, data interface{}) error{}
	DesignWriters     = map[string]func(w io.Writer, data interface{}) error{}
)

// Register helpers (idempotent last-wins)
func RegisterFold(format string, fn func(io.Writer, interface{}) error)       { FoldWriters[format] = fn }
func RegisterEvaluation(format string, fn func(io.Writer, interface{}) error) { EvaluationWriters[format] = fn }
func RegisterDesign(format string, fn func(io.Writer, interface{}) error)     { DesignWriters[format] = fn }

func dispatch(kind string, reg map[string]func(io.Writer, interface{}) error, format string, w io.Writer, payload interface{}) error {
	fn, ok := reg[format]
	if !ok {
		return errors.Errorf("unknown %s format %q (no writer registered)", kind, format)
	}
	return fn(w, payload)
}

// WriteFold dispatches to the fold writer registered for format.
func WriteFold(format string, w io.Writer, payload interface{}) error {
	return dispatch("fold", FoldWriters, format, w, payload)
}

// WriteEvaluation dispatches to the evaluation writer registered for format.
func WriteEvaluation(format string, w io.Writer, payload interface{}) error {
	return dispatch("evaluation", EvaluationWriters, format, w, payload)
}

// WriteDesign dispatches to the design listing writer registered for format.
func WriteDesign(format string, w io.Writer, payload interface{}) error {
	return dispatch("design", DesignWriters, format, w, payload)
}
