package timeline

import (
	"context"

	"github.com/casaflow/casaflow/internal/domain/activity"
	"github.com/casaflow/casaflow/internal/domain/contact"
)

// The aggregator reads five independent source streams plus the
// contact-to-property join. All are read-only from its perspective.

// StatusChangeSource reads the contact status audit ledger.
type StatusChangeSource interface {
	ListByContact(ctx context.Context, contactID string) ([]contact.StatusChange, error)
}

// LeadChangeSource reads lead pipeline stage changes.
type LeadChangeSource interface {
	ListByLead(ctx context.Context, leadID string) ([]LeadChange, error)
}

// PropertyLinkSource resolves the contact's linked property ids.
type PropertyLinkSource interface {
	PropertyIDs(ctx context.Context, contactID string) ([]string, error)
}

// PropertyChangeSource reads status changes for a set of properties.
type PropertyChangeSource interface {
	ListByProperties(ctx context.Context, propertyIDs []string) ([]PropertyChange, error)
}

// ActivitySource reads generic activities.
type ActivitySource interface {
	ListByLead(ctx context.Context, leadID string) ([]activity.Activity, error)
}

// FileSource reads uploaded-document metadata.
type FileSource interface {
	ListByContact(ctx context.Context, contactID string) ([]contact.File, error)
}
