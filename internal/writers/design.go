// internal/writers/design.go
package writers

import (
	"encoding/json"
	"io"

	"foldlab/internal/output"
	"foldlab/internal/store"
)

type designArgs struct {
	Header  bool
	Designs []store.Design
}

func init() {
	RegisterDesign(output.FormatJSON, func(w io.Writer, payload interface{}) error {
		args := payload.(designArgs)
		return output.EncodePretty(w, output.ToAPIDesigns(args.Designs))
	})
	RegisterDesign(output.FormatJSONL, func(w io.Writer, payload interface{}) error {
		args := payload.(designArgs)
		enc := json.NewEncoder(w)
		for _, d := range args.Designs {
			if err := enc.Encode(output.ToAPIDesign(d)); err != nil {
				return err
			}
		}
		return nil
	})
	RegisterDesign(output.FormatText, func(w io.Writer, payload interface{}) error {
		args := payload.(designArgs)
		return output.WriteDesignsText(w, args.Designs, args.Header)
	})
}

// WriteDesigns renders a design listing in format.
func WriteDesigns(out io.Writer, format string, header bool, list []store.Design) error {
	err := WriteDesign(format, out, designArgs{Header: header, Designs: list})
	if IsBrokenPipe(err) {
		return nil
	}
	return err
}
