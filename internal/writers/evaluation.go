// internal/writers/evaluation.go
package writers

import (
	"encoding/json"
	"io"

	"foldlab/internal/evaluate"
	"foldlab/internal/output"
)

type evalArgs struct {
	Header bool
	Report *evaluate.Report
}

func init() {
	RegisterEvaluation(output.FormatJSON, func(w io.Writer, payload interface{}) error {
		args := payload.(evalArgs)
		return output.EncodePretty(w, output.ToAPIEvaluation(args.Report))
	})
	RegisterEvaluation(output.FormatJSONL, func(w io.Writer, payload interface{}) error {
		args := payload.(evalArgs)
		return json.NewEncoder(w).Encode(output.ToAPIEvaluation(args.Report))
	})
	RegisterEvaluation(output.FormatText, func(w io.Writer, payload interface{}) error {
		args := payload.(evalArgs)
		return output.WriteEvaluationText(w, args.Report, args.Header)
	})
}

// WriteReport renders one evaluation report in format.
func WriteReport(out io.Writer, format string, header bool, rep *evaluate.Report) error {
	err := WriteEvaluation(format, out, evalArgs{Header: header, Report: rep})
	if IsBrokenPipe(err) {
		return nil
	}
	return err
}
