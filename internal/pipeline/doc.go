// Package pipeline streams FASTA records through a folding engine and calls
// a visit callback with each result.
//
// The only contract it needs is folding.Folder, so tests can swap in fakes.
package pipeline
