package activity

import "time"

// Type classifies a generic CRM event.
type Type string

const (
	TypeCall    Type = "call"
	TypeEmail   Type = "email"
	TypeMeeting Type = "meeting"
	TypeShowing Type = "showing"
	TypeNote    Type = "note"
)

// Activity is a free-text event row keyed to a lead id. Lead-converted
// contacts keep the lead's id, so the same key addresses both.
type Activity struct {
	ID          string    `json:"id"`
	LeadID      string    `json:"lead_id"`
	Type        Type      `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
