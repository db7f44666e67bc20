// internal/output/rows.go
package output

import (
	"fmt"
	"strconv"
	"strings"

	"foldlab-core/constraint"
	"foldlab/internal/result"
)

// IntsCSV joins a as "1,2,3"; empty input gives "".
func IntsCSV(a []int) string {
	if len(a) == 0 {
		return ""
	}
	ss := make([]string, len(a))
	for i, v := range a {
		ss[i] = strconv.Itoa(v)
	}
	return strings.Join(ss, ",")
}

// FormatFoldRowTSV returns the TSVHeader columns for f (no trailing newline).
func FormatFoldRowTSV(f result.Fold) string {
	v := ToAPIFold(f)
	return fmt.Sprintf("%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s",
		v.SourceFile, v.SequenceID, v.Engine,
		v.Length, v.Pairs,
		strconv.FormatFloat(v.Score, 'g', -1, 64),
		strconv.FormatFloat(v.GC, 'f', 3, 64),
		v.Sequence, v.Structure, v.Error,
	)
}

// FormatConstraintRowTSV returns the EvalTSVHeader columns for one result.
func FormatConstraintRowTSV(puzzleID string, r constraint.Result) string {
	v := ToAPIConstraint(r)
	return fmt.Sprintf("%s\t%s\t%s\t%t\t%d\t%s",
		puzzleID, v.Name, v.Param, v.Satisfied, v.Mutations, IntsCSV(v.Highlight))
}
