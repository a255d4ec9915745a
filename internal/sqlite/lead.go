package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/casaflow/casaflow/internal/domain/timeline"
)

// LeadChangeRepository implements repository.LeadChangeRepository for SQLite
type LeadChangeRepository struct {
	db *DB
}

// NewLeadChangeRepository creates a new LeadChangeRepository
func NewLeadChangeRepository(db *DB) *LeadChangeRepository {
	return &LeadChangeRepository{db: db}
}

// Record inserts a lead pipeline stage change
func (r *LeadChangeRepository) Record(ctx context.Context, change *timeline.LeadChange) error {
	createdAt := change.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO lead_status_changes (id, lead_id, old_status, new_status, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		change.ID,
		change.LeadID,
		change.OldStatus,
		change.NewStatus,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record lead change: %w", err)
	}

	change.CreatedAt = createdAt
	return nil
}

// ListByLead returns a lead's stage changes, most recent first
func (r *LeadChangeRepository) ListByLead(ctx context.Context, leadID string) ([]timeline.LeadChange, error) {
	query := `
		SELECT id, lead_id, old_status, new_status, created_at
		FROM lead_status_changes
		WHERE lead_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lead changes: %w", err)
	}
	defer rows.Close()

	var changes []timeline.LeadChange
	for rows.Next() {
		var change timeline.LeadChange
		if err := rows.Scan(
			&change.ID,
			&change.LeadID,
			&change.OldStatus,
			&change.NewStatus,
			&change.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lead change: %w", err)
		}
		changes = append(changes, change)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lead change rows: %w", err)
	}

	return changes, nil
}
