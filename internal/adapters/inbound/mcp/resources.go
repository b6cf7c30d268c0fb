package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ordercraft/ordercraft/internal/application"
)

// registerResources registers all OrderCraft MCP resources on the given server.
func registerResources(s *server.MCPServer, sessions *application.SessionManager) {
	// 1. ordercraft://sessions - open session ids
	s.AddResource(
		mcplib.NewResource(
			"ordercraft://sessions",
			"Open Sessions",
			mcplib.WithResourceDescription("Ids of the order wizard sessions that are still open"),
			mcplib.WithMIMEType("application/json"),
		),
		handleSessionsResource(sessions),
	)

	// 2. ordercraft://sessions/{id} - one session's state (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"ordercraft://sessions/{id}",
			"Wizard Session",
			mcplib.WithTemplateDescription("Step, customer, cart and totals of one wizard session"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleSessionResource(sessions),
	)
}

func handleSessionsResource(sessions *application.SessionManager) server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(sessions.IDs(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling sessions: %w", err)
		}
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "ordercraft://sessions",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleSessionResource(sessions *application.SessionManager) server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		id := templateArg(request.Params.Arguments["id"])
		if id == "" {
			return nil, fmt.Errorf("session id is required")
		}

		w, err := sessions.Get(id)
		if err != nil {
			return nil, err
		}
		snap, err := w.Snapshot()
		if err != nil {
			return nil, err
		}

		data, err := json.MarshalIndent(sessionView{SessionID: id, Snapshot: snap}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling session: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

// templateArg unwraps a URI template variable, which the server may pass as
// a string or a single-element slice.
func templateArg(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	}
	return ""
}
