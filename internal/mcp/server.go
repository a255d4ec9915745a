// Package mcp exposes the contact lifecycle and timeline to MCP clients
// (assistants, agent tooling). It runs over stdio for local use; auth is the
// process boundary, like any local dev tool.
package mcp

import (
	"context"
	"log/slog"

	"github.com/casaflow/casaflow/internal/domain/contact"
	"github.com/casaflow/casaflow/internal/domain/timeline"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ContactService defines contact operations needed by MCP.
type ContactService interface {
	Get(ctx context.Context, id string) (*contact.Contact, error)
	SetMode(ctx context.Context, actor contact.Actor, contactID string, mode contact.StatusMode) (*contact.Contact, error)
	SetManualStatus(ctx context.Context, actor contact.Actor, contactID string, status contact.Status) (*contact.Contact, error)
	StatusHistory(ctx context.Context, contactID string) ([]contact.StatusChange, error)
}

// TimelineService defines timeline operations needed by MCP.
type TimelineService interface {
	GetTimeline(ctx context.Context, contactID string) ([]timeline.Item, error)
}

// Config contains server configuration.
type Config struct {
	Contacts ContactService
	Timeline TimelineService
	// Actor is attributed on mutations made through this surface.
	Actor  contact.Actor
	Logger *slog.Logger
}

const serverInstructions = `Casaflow CRM contact lifecycle tools.

Use get_contact and get_timeline to inspect a contact's status and unified
event feed. set_status_mode and set_manual_status change the lifecycle
status and are audited; prefer reads unless the operator asked for a change.`

// NewServer creates and configures an MCP server with all tools.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "casaflow",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerTools(server, cfg)

	return server
}
