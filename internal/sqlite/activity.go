package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/casaflow/casaflow/internal/domain/activity"
)

// ActivityRepository implements repository.ActivityRepository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log inserts a new activity row
func (r *ActivityRepository) Log(ctx context.Context, a *activity.Activity) error {
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO activities (id, lead_id, type, description, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.LeadID,
		a.Type,
		a.Description,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}

	a.CreatedAt = createdAt
	return nil
}

// ListByLead returns a lead's activities, most recent first
func (r *ActivityRepository) ListByLead(ctx context.Context, leadID string) ([]activity.Activity, error) {
	query := `
		SELECT id, lead_id, type, description, created_at
		FROM activities
		WHERE lead_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []activity.Activity
	for rows.Next() {
		var a activity.Activity
		if err := rows.Scan(
			&a.ID,
			&a.LeadID,
			&a.Type,
			&a.Description,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return activities, nil
}
