// ABOUTME: MCP server setup for the health tracker.
// ABOUTME: Wraps the MCP server around a shared repository.
package mcp

import (
	"context"

	"github.com/harperreed/healthtrack/internal/repository"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with repository access.
type Server struct {
	mcpServer *mcp.Server
	repo      *repository.Repository
	goals     repository.Goals
}

// NewServer creates a new MCP server over repo.
func NewServer(repo *repository.Repository, goals repository.Goals) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "healthtrack",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		goals:     goals,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
