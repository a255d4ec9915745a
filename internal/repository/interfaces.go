package repository

import (
	"context"

	"github.com/casaflow/casaflow/internal/domain/activity"
	"github.com/casaflow/casaflow/internal/domain/contact"
	"github.com/casaflow/casaflow/internal/domain/timeline"
)

// ContactRepository manages contact persistence. This service only writes the
// status columns; the rest of the row belongs to the wider CRM.
type ContactRepository interface {
	Get(ctx context.Context, id string) (*contact.Contact, error)
	Create(ctx context.Context, c *contact.Contact) error
	SetStatus(ctx context.Context, id string, mode contact.StatusMode, effective contact.Status, manual *contact.Status) error
	SetMode(ctx context.Context, id string, mode contact.StatusMode) error
}

// StatusChangeRepository manages the append-only status audit ledger.
type StatusChangeRepository interface {
	Append(ctx context.Context, change *contact.StatusChange) error
	ListByContact(ctx context.Context, contactID string) ([]contact.StatusChange, error)
}

// LeadChangeRepository manages lead pipeline stage changes. The pipeline
// writes them; this service reads them for the timeline.
type LeadChangeRepository interface {
	Record(ctx context.Context, change *timeline.LeadChange) error
	ListByLead(ctx context.Context, leadID string) ([]timeline.LeadChange, error)
}

// PropertyRepository manages property links and property status changes.
type PropertyRepository interface {
	Link(ctx context.Context, contactID, propertyID, role string) error
	PropertyIDs(ctx context.Context, contactID string) ([]string, error)
	RecordChange(ctx context.Context, change *timeline.PropertyChange) error
	ListByProperties(ctx context.Context, propertyIDs []string) ([]timeline.PropertyChange, error)
}

// ActivityRepository manages generic activity rows.
type ActivityRepository interface {
	Log(ctx context.Context, a *activity.Activity) error
	ListByLead(ctx context.Context, leadID string) ([]activity.Activity, error)
}

// FileRepository manages uploaded-document metadata.
type FileRepository interface {
	Add(ctx context.Context, f *contact.File) error
	ListByContact(ctx context.Context, contactID string) ([]contact.File, error)
}
