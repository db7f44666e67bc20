// internal/output/design.go
package output

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"foldlab/internal/store"
	"foldlab/pkg/api"
)

// DesignTSVHeader is the header row of design listings.
const DesignTSVHeader = "id\tpuzzle_id\tsatisfied\tscore\tgc\tcreated_at\tsequence\tstructure"

// ToAPIDesign converts a stored design to the wire form.
func ToAPIDesign(d store.Design) api.DesignV1 {
	return api.DesignV1{
		ID:        d.ID,
		PuzzleID:  d.PuzzleID,
		Sequence:  d.Sequence,
		Structure: d.Structure,
		Score:     d.Score,
		GC:        d.GC,
		Satisfied: d.Satisfied,
		CreatedAt: d.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// FormatDesignRowTSV returns the DesignTSVHeader columns for d.
func FormatDesignRowTSV(d store.Design) string {
	v := ToAPIDesign(d)
	return fmt.Sprintf("%s\t%s\t%t\t%s\t%s\t%s\t%s\t%s",
		v.ID, v.PuzzleID, v.Satisfied,
		strconv.FormatFloat(v.Score, 'g', -1, 64),
		strconv.FormatFloat(v.GC, 'f', 3, 64),
		v.CreatedAt, v.Sequence, v.Structure)
}

// WriteDesignsText writes one TSV row per design.
func WriteDesignsText(w io.Writer, list []store.Design, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, DesignTSVHeader); err != nil {
			return err
		}
	}
	for _, d := range list {
		if _, err := fmt.Fprintln(w, FormatDesignRowTSV(d)); err != nil {
			return err
		}
	}
	return nil
}

// ToAPIDesigns converts a listing; nil becomes an empty slice so JSON shows [].
func ToAPIDesigns(list []store.Design) []api.DesignV1 {
	out := make([]api.DesignV1, 0, len(list))
	for _, d := range list {
		out = append(out, ToAPIDesign(d))
	}
	return out
}
