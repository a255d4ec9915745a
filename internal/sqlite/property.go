package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/casaflow/casaflow/internal/domain/timeline"
)

// PropertyRepository implements repository.PropertyRepository for SQLite
type PropertyRepository struct {
	db *DB
}

// NewPropertyRepository creates a new PropertyRepository
func NewPropertyRepository(db *DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// Link associates a contact with a property
func (r *PropertyRepository) Link(ctx context.Context, contactID, propertyID, role string) error {
	if role == "" {
		role = "interested"
	}
	query := `
		INSERT INTO contact_properties (contact_id, property_id, role, created_at)
		VALUES (?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query, contactID, propertyID, role, time.Now()); err != nil {
		return fmt.Errorf("failed to link property: %w", err)
	}
	return nil
}

// PropertyIDs returns the ids of properties linked to a contact
func (r *PropertyRepository) PropertyIDs(ctx context.Context, contactID string) ([]string, error) {
	query := `SELECT property_id FROM contact_properties WHERE contact_id = ?`
	rows, err := r.db.QueryContext(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve property links: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan property link: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property link rows: %w", err)
	}

	return ids, nil
}

// RecordChange inserts a property status change
func (r *PropertyRepository) RecordChange(ctx context.Context, change *timeline.PropertyChange) error {
	createdAt := change.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO property_status_changes (id, property_id, old_status, new_status, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		change.ID,
		change.PropertyID,
		change.OldStatus,
		change.NewStatus,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record property change: %w", err)
	}

	change.CreatedAt = createdAt
	return nil
}

// ListByProperties returns status changes for the given property set,
// most recent first. Callers short-circuit on an empty set; an empty
// argument here still returns an empty list without querying.
func (r *PropertyRepository) ListByProperties(ctx context.Context, propertyIDs []string) ([]timeline.PropertyChange, error) {
	if len(propertyIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?, ", len(propertyIDs)-1) + "?"
	query := fmt.Sprintf(`
		SELECT id, property_id, old_status, new_status, created_at
		FROM property_status_changes
		WHERE property_id IN (%s)
		ORDER BY created_at DESC
	`, placeholders)

	args := make([]interface{}, len(propertyIDs))
	for i, id := range propertyIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list property changes: %w", err)
	}
	defer rows.Close()

	var changes []timeline.PropertyChange
	for rows.Next() {
		var change timeline.PropertyChange
		if err := rows.Scan(
			&change.ID,
			&change.PropertyID,
			&change.OldStatus,
			&change.NewStatus,
			&change.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan property change: %w", err)
		}
		changes = append(changes, change)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property change rows: %w", err)
	}

	return changes, nil
}

// AddProperty inserts a property row (used by tests and seeding; property
// CRUD itself belongs to the wider CRM).
func (r *PropertyRepository) AddProperty(ctx context.Context, id, address, status string) error {
	if status == "" {
		status = "listed"
	}
	query := `INSERT INTO properties (id, address, status, created_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, id, address, status, time.Now()); err != nil {
		return fmt.Errorf("failed to add property: %w", err)
	}
	return nil
}
