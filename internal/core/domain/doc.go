// Package domain defines the core business entities for Recall.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A document held in the knowledge base
//   - Chunk: The atomic retrieval unit split from a document
//   - RetrievalCandidate: A scored chunk produced by one retrieval call
//   - Citation: A pointer from assembled context back to its source chunk
//   - RAGContext: The token-budgeted context block handed to the LLM
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
