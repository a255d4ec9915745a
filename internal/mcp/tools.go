package mcp

import (
	"context"

	"github.com/casaflow/casaflow/internal/domain/contact"
	"github.com/casaflow/casaflow/internal/domain/timeline"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type getContactParams struct {
	ContactID string `json:"contact_id"`
}

type getTimelineParams struct {
	ContactID string `json:"contact_id"`
}

type getStatusHistoryParams struct {
	ContactID string `json:"contact_id"`
}

type setStatusModeParams struct {
	ContactID string `json:"contact_id"`
	Mode      string `json:"mode"`
}

type setManualStatusParams struct {
	ContactID string `json:"contact_id"`
	Status    string `json:"status"`
}

type timelineResult struct {
	Items []timeline.Item `json:"items"`
}

type statusHistoryResult struct {
	Items []contact.StatusChange `json:"items"`
}

func registerTools(server *sdkmcp.Server, cfg Config) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_contact",
		Description: "Get a contact with its lifecycle status (mode, effective, manual)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params getContactParams) (*sdkmcp.CallToolResult, *contact.Contact, error) {
		c, err := cfg.Contacts.Get(ctx, params.ContactID)
		if err != nil {
			return nil, nil, err
		}
		return nil, c, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_timeline",
		Description: "Get a contact's unified activity timeline, most recent first",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params getTimelineParams) (*sdkmcp.CallToolResult, *timelineResult, error) {
		items, err := cfg.Timeline.GetTimeline(ctx, params.ContactID)
		if err != nil {
			return nil, nil, err
		}
		return nil, &timelineResult{Items: items}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_status_history",
		Description: "Get a contact's status change audit records, most recent first",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params getStatusHistoryParams) (*sdkmcp.CallToolResult, *statusHistoryResult, error) {
		changes, err := cfg.Contacts.StatusHistory(ctx, params.ContactID)
		if err != nil {
			return nil, nil, err
		}
		return nil, &statusHistoryResult{Items: changes}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_status_mode",
		Description: "Switch a contact's status mode between auto and manual",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params setStatusModeParams) (*sdkmcp.CallToolResult, *contact.Contact, error) {
		c, err := cfg.Contacts.SetMode(ctx, cfg.Actor, params.ContactID, contact.StatusMode(params.Mode))
		if err != nil {
			return nil, nil, err
		}
		return nil, c, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_manual_status",
		Description: "Set a contact's manual status (requires manual mode; the change is audited)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params setManualStatusParams) (*sdkmcp.CallToolResult, *contact.Contact, error) {
		c, err := cfg.Contacts.SetManualStatus(ctx, cfg.Actor, params.ContactID, contact.Status(params.Status))
		if err != nil {
			return nil, nil, err
		}
		return nil, c, nil
	})
}
