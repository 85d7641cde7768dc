// Package chunker splits document text into ordered, offset-tracked
// chunks under one of four strategies: sentence, paragraph, fixed and
// semantic.
//
// Splitting is a pure CPU-bound transform: the same input always
// produces byte-identical chunks, and the union of chunk offset ranges
// always reconstructs the original text. Chunker holds no mutable
// state, so callers may chunk documents in parallel.
package chunker
