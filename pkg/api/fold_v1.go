// pkg/api/fold_v1.go
package api

// FoldV1 is the stable JSON/JSONL schema for one folded sequence.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type FoldV1 struct {
	SequenceID string  `json:"sequence_id"`
	Engine     string  `json:"engine"`
	Sequence   string  `json:"sequence"`
	Structure  string  `json:"structure"` // dot-bracket
	Pairs      int     `json:"pairs"`
	Score      float64 `json:"score"`
	Length     int     `json:"length"`
	GC         float64 `json:"gc,omitempty"` // fraction in [0,1]
	SourceFile string  `json:"source_file,omitempty"`
	Error      string  `json:"error,omitempty"`
}
