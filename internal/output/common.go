// internal/output/common.go
package output

// Output formats understood by the writers.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// TSVHeader is the canonical header row for fold text/TSV output.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "source_file\tsequence_id\tengine\tlength\tpairs\tscore\tgc\tsequence\tstructure\terror"

// EvalTSVHeader is the header row of the per-constraint evaluation table.
const EvalTSVHeader = "puzzle_id\tconstraint\tparam\tsatisfied\tmutations\thighlight"
