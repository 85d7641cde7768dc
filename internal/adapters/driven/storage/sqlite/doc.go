// Package sqlite implements the chunk store on a single SQLite file.
//
// Documents and chunks live in one database under the user's data
// directory. Chunk embeddings are stored as little-endian float32
// blobs so the in-process vector index can be rebuilt without
// re-embedding.
package sqlite
