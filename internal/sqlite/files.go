package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/casaflow/casaflow/internal/domain/contact"
)

// FileRepository implements repository.FileRepository for SQLite
type FileRepository struct {
	db *DB
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *DB) *FileRepository {
	return &FileRepository{db: db}
}

// Add inserts an uploaded-document metadata row
func (r *FileRepository) Add(ctx context.Context, f *contact.File) error {
	createdAt := f.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO contact_files (id, contact_id, name, tag, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		f.ID,
		f.ContactID,
		f.Name,
		nullString(f.Tag),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add contact file: %w", err)
	}

	f.CreatedAt = createdAt
	return nil
}

// ListByContact returns a contact's file uploads, most recent first
func (r *FileRepository) ListByContact(ctx context.Context, contactID string) ([]contact.File, error) {
	query := `
		SELECT id, contact_id, name, tag, created_at
		FROM contact_files
		WHERE contact_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact files: %w", err)
	}
	defer rows.Close()

	var files []contact.File
	for rows.Next() {
		var f contact.File
		var tag sql.NullString
		if err := rows.Scan(
			&f.ID,
			&f.ContactID,
			&f.Name,
			&tag,
			&f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact file: %w", err)
		}
		f.Tag = tag.String
		files = append(files, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact file rows: %w", err)
	}

	return files, nil
}
