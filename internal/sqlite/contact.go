package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/casaflow/casaflow/internal/domain/contact"
	"github.com/casaflow/casaflow/internal/repository"
)

// ContactRepository implements repository.ContactRepository for SQLite
type ContactRepository struct {
	db *DB
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Get returns a contact by id
func (r *ContactRepository) Get(ctx context.Context, id string) (*contact.Contact, error) {
	query := `
		SELECT id, name, email, phone, tags,
			status_mode, status_effective, status_manual,
			created_at, updated_at
		FROM contacts
		WHERE id = ?
	`

	var c contact.Contact
	var email, phone, statusManual sql.NullString
	var tagsJSON string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&email,
		&phone,
		&tagsJSON,
		&c.StatusMode,
		&c.StatusEffective,
		&statusManual,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	c.Email = email.String
	c.Phone = phone.String
	if statusManual.Valid {
		manual := contact.Status(statusManual.String)
		c.StatusManual = &manual
	}
	if err := json.Unmarshal([]byte(tagsJSON), &c.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode contact tags: %w", err)
	}

	return &c, nil
}

// Create inserts a new contact
func (r *ContactRepository) Create(ctx context.Context, c *contact.Contact) error {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to encode contact tags: %w", err)
	}

	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO contacts (
			id, name, email, phone, tags,
			status_mode, status_effective, status_manual,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		nullString(c.Email),
		nullString(c.Phone),
		string(tagsJSON),
		c.StatusMode,
		c.StatusEffective,
		nullStatus(c.StatusManual),
		createdAt,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	c.CreatedAt = createdAt
	c.UpdatedAt = createdAt
	return nil
}

// SetStatus writes mode, effective and manual status in one statement so the
// three columns can never be observed out of sync.
func (r *ContactRepository) SetStatus(ctx context.Context, id string, mode contact.StatusMode, effective contact.Status, manual *contact.Status) error {
	query := `
		UPDATE contacts
		SET status_mode = ?, status_effective = ?, status_manual = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query, mode, effective, nullStatus(manual), time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set contact status: %w", err)
	}
	return requireRow(result)
}

// SetMode writes only the status mode, leaving the status values untouched.
func (r *ContactRepository) SetMode(ctx context.Context, id string, mode contact.StatusMode) error {
	query := `
		UPDATE contacts
		SET status_mode = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query, mode, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set contact mode: %w", err)
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStatus(s *contact.Status) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*s), Valid: true}
}
