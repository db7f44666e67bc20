// internal/output/sort.go
package output

import (
	"sort"

	"foldlab/internal/result"
)

// LessFold orders folds by input position (for --sort).
func LessFold(a, b result.Fold) bool {
	if a.SourceFile != b.SourceFile {
		return a.SourceFile < b.SourceFile
	}
	if a.Index != b.Index {
		return a.Index < b.Index
	}
	return a.SequenceID < b.SequenceID
}

func SortFolds(list []result.Fold) {
	sort.SliceStable(list, func(i, j int) bool { return LessFold(list[i], list[j]) })
}
