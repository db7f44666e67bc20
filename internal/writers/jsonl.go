// internal/writers/jsonl.go
package writers

import (
	"io"

	"foldlab/internal/jsonlutil"
	"foldlab/internal/output"
	"foldlab/internal/result"
	"foldlab/pkg/api"
)

// StartFoldJSONLWriter streams each fold as one JSON line (v1).
func StartFoldJSONLWriter(out io.Writer, bufSize int) (chan<- result.Fold, <-chan error) {
	return jsonlutil.Start[result.Fold, api.FoldV1](out, bufSize, output.ToAPIFold, IsBrokenPipe)
}
