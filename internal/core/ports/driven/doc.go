// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for retrieval to function:
//
//   - ChunkStore: Document and chunk persistence
//   - EmbeddingService: Generates vector embeddings for chunks and queries
//   - VectorIndex: Vector storage and cosine-similarity search
//   - KeywordIndex: BM25 lexical scoring over the chunk corpus
//
// # Optional Interfaces
//
// These can be nil - behaviour is explicit, never silently degraded:
//
//   - Reranker: Cross-encoder re-ranking. Retrieval with re-ranking
//     requested fails when the reranker is nil or unreachable.
//   - TokenCounter: Context token estimation. When nil the assembler
//     falls back to a character-based estimate.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
