package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// serverName identifies this implementation to MCP clients.
const serverName = "recall"

// Version is reported in the MCP handshake.
const Version = "0.1.0"

// shutdownGrace bounds how long an HTTP shutdown waits for in-flight
// tool calls.
const shutdownGrace = 5 * time.Second

// Server wires the retrieval core into an MCP session: two tools
// (retrieve, assemble_context) and the document resources.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer validates the ports and registers all tools and resources.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    serverName,
			Version: Version,
		}, nil),
	}
	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves one session over stdio, blocking until the client
// disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves streamable-HTTP sessions on addr. All sessions share
// the one underlying server; cancelling ctx drains and stops it.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr: addr,
		Handler: mcp.NewStreamableHTTPHandler(
			func(*http.Request) *mcp.Server { return s.server }, nil),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
