package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ordercraft/ordercraft/internal/application"
)

// NewOrderCraftMCPServer creates an MCP server exposing the order wizard as
// tools. Each ordercraft_open call starts an independent wizard session held
// by sessions.
func NewOrderCraftMCPServer(sessions *application.SessionManager) *server.MCPServer {
	s := server.NewMCPServer(
		"ordercraft",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, sessions)
	registerResources(s, sessions)

	return s
}
