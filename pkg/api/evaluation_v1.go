// pkg/api/evaluation_v1.go
package api

// ConstraintStatusV1 is one constraint's outcome.
type ConstraintStatusV1 struct {
	Name       string `json:"name"`  // MUTATION | SHAPE | ANTISHAPE
	Param      string `json:"param"` // serialized parameter
	Satisfied  bool   `json:"satisfied"`
	Mutations  int    `json:"mutations,omitempty"`
	WrongPairs []int  `json:"wrong_pairs,omitempty"`
	Highlight  []int  `json:"highlight,omitempty"` // flat inclusive [start,end] pairs
}

// StateV1 is one folded puzzle state.
type StateV1 struct {
	Index     int     `json:"index"`
	Sequence  string  `json:"sequence"`
	Structure string  `json:"structure"` // folded, target order
	Target    string  `json:"target"`
	Score     float64 `json:"score"`
}

// EvaluationV1 is the stable schema for a puzzle evaluation.
type EvaluationV1 struct {
	PuzzleID    string               `json:"puzzle_id"`
	Title       string               `json:"title,omitempty"`
	Engine      string               `json:"engine"`
	Satisfied   bool                 `json:"satisfied"`
	States      []StateV1            `json:"states"`
	Constraints []ConstraintStatusV1 `json:"constraints"`
}

// DesignV1 is a stored design as listed by the design store.
type DesignV1 struct {
	ID        string  `json:"id"` // sequence hash
	PuzzleID  string  `json:"puzzle_id,omitempty"`
	Sequence  string  `json:"sequence"`
	Structure string  `json:"structure,omitempty"`
	Score     float64 `json:"score"`
	GC        float64 `json:"gc"`
	Satisfied bool    `json:"satisfied"`
	CreatedAt string  `json:"created_at"` // RFC 3339, UTC
}
