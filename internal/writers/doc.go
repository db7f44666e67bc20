// Package writers turns folds and evaluations into serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (TSV/JSON/JSONL).
//   • Engines stay domain-only; the pipeline stays orchestration-only.
//   • JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
