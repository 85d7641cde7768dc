package domain

import "time"

// Document represents a document held in the knowledge base.
// Upload, extraction and storage happen upstream; the retrieval core
// only needs the extracted text and identity.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// CollectionID groups documents into a searchable collection.
	CollectionID string

	// URI is the original location (file path, URL, etc).
	URI string

	// Title is the human-readable title.
	Title string

	// Content is the full extracted text before chunking.
	Content string

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// CreatedAt is when the document was first indexed.
	CreatedAt time.Time

	// UpdatedAt is when the document was last updated.
	UpdatedAt time.Time
}
