package contact

import "time"

// StatusMode says whether a contact's lifecycle status is derived by the
// hosted recompute procedure or pinned by an operator.
type StatusMode string

const (
	ModeAuto   StatusMode = "auto"
	ModeManual StatusMode = "manual"
)

// Valid reports whether the mode is one of the known values.
func (m StatusMode) Valid() bool {
	return m == ModeAuto || m == ModeManual
}

// Status is a contact's lifecycle status value.
type Status string

const (
	StatusActive Status = "active"
	StatusPast   Status = "past"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusPast
}

// Audit reasons written by this service. The recompute procedure writes its
// own reasons for auto-mode transitions.
const (
	ReasonManualOverride = "manual override"
	ReasonManualTrigger  = "manual_trigger"
)

// Contact is a person record with a lifecycle status.
//
// StatusEffective is the value the rest of the CRM consults. When StatusMode
// is manual it always equals StatusManual; when auto it is owned by the
// recompute procedure. StatusManual is preserved across a switch back to auto
// so a later manual re-entry does not need re-specification.
type Contact struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	Tags            []string   `json:"tags"`
	StatusMode      StatusMode `json:"status_mode"`
	StatusEffective Status     `json:"status_effective"`
	StatusManual    *Status    `json:"status_manual,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// StatusChange is one immutable entry in the status audit ledger. Exactly one
// is appended per effective status change; mode toggles that leave the
// effective value untouched append nothing.
type StatusChange struct {
	ID        string    `json:"id"`
	ContactID string    `json:"contact_id"`
	OldStatus Status    `json:"old_status"`
	NewStatus Status    `json:"new_status"`
	Reason    string    `json:"reason"`
	ChangedBy *string   `json:"changed_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// File is the metadata row for an uploaded document. The blob itself lives in
// external storage; the row's presence is the timeline event.
type File struct {
	ID        string    `json:"id"`
	ContactID string    `json:"contact_id"`
	Name      string    `json:"name"`
	Tag       string    `json:"tag,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Actor identifies the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role string
}

const (
	RoleAdmin = "admin"
	RoleAgent = "agent"
)

// IsAdmin reports whether the actor holds the elevated role required for
// status mutations.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
