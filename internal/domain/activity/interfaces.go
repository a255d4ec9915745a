package activity

import "context"

// Repository provides persistence operations for activities.
type Repository interface {
	Log(ctx context.Context, a *Activity) error
	ListByLead(ctx context.Context, leadID string) ([]Activity, error)
}
