package mcp

import (
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
)

// Ports aggregates the port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval answers queries with ranked chunk candidates.
	Retrieval driving.RetrievalService

	// Assembler builds token-budgeted context blocks.
	Assembler driving.ContextAssembler

	// Documents backs the document resources. Optional; resources
	// answer empty without it.
	Documents driven.ChunkStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	if p.Assembler == nil {
		return ErrMissingAssembler
	}
	// Documents is optional
	return nil
}
