package contact

import "context"

// Repository provides persistence for contact records. The service only
// touches the status columns it owns; SetStatus writes mode, effective and
// manual in one statement so they can never be observed out of sync.
type Repository interface {
	Get(ctx context.Context, id string) (*Contact, error)
	Create(ctx context.Context, c *Contact) error
	SetStatus(ctx context.Context, id string, mode StatusMode, effective Status, manual *Status) error
	SetMode(ctx context.Context, id string, mode StatusMode) error
}

// StatusChangeRepository appends to and reads the audit ledger.
type StatusChangeRepository interface {
	Append(ctx context.Context, change *StatusChange) error
	ListByContact(ctx context.Context, contactID string) ([]StatusChange, error)
}

// FileRepository persists uploaded-document metadata.
type FileRepository interface {
	Add(ctx context.Context, f *File) error
	ListByContact(ctx context.Context, contactID string) ([]File, error)
}

// StatusRecomputer invokes the hosted status-derivation procedure. The
// procedure writes the new effective status (and its own audit record if the
// value changes); this service only propagates its error.
type StatusRecomputer interface {
	RecomputeStatus(ctx context.Context, contactID, reason string) error
}

// RefreshNotifier tells dependent views (header badge, timeline) to re-pull.
type RefreshNotifier interface {
	ContactChanged(contactID, source string)
}
