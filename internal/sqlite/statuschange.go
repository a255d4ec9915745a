package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/casaflow/casaflow/internal/domain/contact"
)

// StatusChangeRepository implements repository.StatusChangeRepository for SQLite.
// The ledger is insert-only; nothing here updates or deletes.
type StatusChangeRepository struct {
	db *DB
}

// NewStatusChangeRepository creates a new StatusChangeRepository
func NewStatusChangeRepository(db *DB) *StatusChangeRepository {
	return &StatusChangeRepository{db: db}
}

// Append inserts a new audit record
func (r *StatusChangeRepository) Append(ctx context.Context, change *contact.StatusChange) error {
	createdAt := change.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO contact_status_changes (
			id, contact_id, old_status, new_status, reason, changed_by, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	var changedBy sql.NullString
	if change.ChangedBy != nil {
		changedBy = sql.NullString{String: *change.ChangedBy, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		change.ID,
		change.ContactID,
		change.OldStatus,
		change.NewStatus,
		change.Reason,
		changedBy,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append status change: %w", err)
	}

	change.CreatedAt = createdAt
	return nil
}

// ListByContact returns a contact's audit records, most recent first
func (r *StatusChangeRepository) ListByContact(ctx context.Context, contactID string) ([]contact.StatusChange, error) {
	query := `
		SELECT id, contact_id, old_status, new_status, reason, changed_by, created_at
		FROM contact_status_changes
		WHERE contact_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to list status changes: %w", err)
	}
	defer rows.Close()

	var changes []contact.StatusChange
	for rows.Next() {
		var change contact.StatusChange
		var changedBy sql.NullString
		if err := rows.Scan(
			&change.ID,
			&change.ContactID,
			&change.OldStatus,
			&change.NewStatus,
			&change.Reason,
			&changedBy,
			&change.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan status change: %w", err)
		}
		if changedBy.Valid {
			change.ChangedBy = &changedBy.String
		}
		changes = append(changes, change)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status change rows: %w", err)
	}

	return changes, nil
}
