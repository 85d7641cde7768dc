// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Recall. It lets AI assistants retrieve from the local knowledge
// base and assemble prompt-ready context blocks.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")

// ErrMissingAssembler is returned when the context assembler is not provided.
var ErrMissingAssembler = errors.New("mcp: context assembler is required")
