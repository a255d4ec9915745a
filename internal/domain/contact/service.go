package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	repository "github.com/casaflow/casaflow/internal/repository/errs"
	"github.com/google/uuid"
)

// Service owns the contact lifecycle status machine: toggling auto/manual
// mode, applying manual overrides, and triggering recomputation.
type Service struct {
	contacts  Repository
	changes   StatusChangeRepository
	files     FileRepository
	recompute StatusRecomputer
	notifier  RefreshNotifier
	logger    *slog.Logger
}

// NewService creates a new contact service.
func NewService(
	contacts Repository,
	changes StatusChangeRepository,
	files FileRepository,
	recompute StatusRecomputer,
	notifier RefreshNotifier,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		contacts:  contacts,
		changes:   changes,
		files:     files,
		recompute: recompute,
		notifier:  notifier,
		logger:    logger,
	}
}

// CreateRequest describes a contact creation request.
type CreateRequest struct {
	ID    string   `json:"id,omitempty"`
	Name  string   `json:"name"`
	Email string   `json:"email,omitempty"`
	Phone string   `json:"phone,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// Get returns a contact by id.
func (s *Service) Get(ctx context.Context, id string) (*Contact, error) {
	c, err := s.contacts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("loading contact: %w", err)
	}
	return c, nil
}

// Create creates a new contact in auto mode. Lead-converted contacts pass the
// lead's id so lead-keyed history stays attached.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Contact, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	now := time.Now()
	c := &Contact{
		ID:              id,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Tags:            tags,
		StatusMode:      ModeAuto,
		StatusEffective: StatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.contacts.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}
	return c, nil
}

// SetMode switches a contact between auto and manual status mode.
//
// Entering manual mode freezes the current effective status as the manual
// value without touching the audit ledger. Leaving manual mode hands the
// effective status back to the recompute procedure, which is invoked
// synchronously and writes its own audit record if the value changes.
// Setting the current mode again is a no-op.
func (s *Service) SetMode(ctx context.Context, actor Actor, contactID string, mode StatusMode) (*Contact, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	if !mode.Valid() {
		return nil, ErrInvalidMode
	}

	c, err := s.Get(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if c.StatusMode == mode {
		return c, nil
	}

	switch mode {
	case ModeManual:
		frozen := c.StatusEffective
		if err := s.contacts.SetStatus(ctx, c.ID, ModeManual, frozen, &frozen); err != nil {
			return nil, fmt.Errorf("freezing manual status: %w", err)
		}
		c.StatusMode = ModeManual
		c.StatusManual = &frozen
	case ModeAuto:
		if err := s.contacts.SetMode(ctx, c.ID, ModeAuto); err != nil {
			return nil, fmt.Errorf("switching to auto mode: %w", err)
		}
		if err := s.recompute.RecomputeStatus(ctx, c.ID, ReasonManualTrigger); err != nil {
			return nil, fmt.Errorf("recomputing status: %w", err)
		}
		// The procedure may have rewritten the effective status.
		if c, err = s.Get(ctx, contactID); err != nil {
			return nil, err
		}
	}

	s.notifyChanged(c.ID, "set_mode")
	return c, nil
}

// SetManualStatus applies an operator override. The contact must already be
// in manual mode. The audit append is ordered strictly after the status
// write; if it fails the status change stands and the gap is surfaced to the
// log for manual reconciliation.
func (s *Service) SetManualStatus(ctx context.Context, actor Actor, contactID string, status Status) (*Contact, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	c, err := s.Get(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if c.StatusMode != ModeManual {
		return nil, ErrInvalidTransition
	}

	preImage := c.StatusEffective
	if err := s.contacts.SetStatus(ctx, c.ID, ModeManual, status, &status); err != nil {
		return nil, fmt.Errorf("writing manual status: %w", err)
	}
	c.StatusEffective = status
	c.StatusManual = &status

	if preImage != status {
		changedBy := actor.ID
		change := &StatusChange{
			ID:        uuid.NewString(),
			ContactID: c.ID,
			OldStatus: preImage,
			NewStatus: status,
			Reason:    ReasonManualOverride,
			ChangedBy: &changedBy,
			CreatedAt: time.Now(),
		}
		if err := s.changes.Append(ctx, change); err != nil {
			// The status write already succeeded and takes priority; the
			// missing ledger entry must not be silent.
			s.logger.Error("status audit append failed",
				"contact_id", c.ID,
				"old_status", preImage,
				"new_status", status,
				"changed_by", actor.ID,
				"error", err,
			)
		}
	}

	s.notifyChanged(c.ID, "set_manual_status")
	return c, nil
}

// StatusHistory returns the contact's audit ledger, most recent first.
func (s *Service) StatusHistory(ctx context.Context, contactID string) ([]StatusChange, error) {
	if _, err := s.Get(ctx, contactID); err != nil {
		return nil, err
	}
	changes, err := s.changes.ListByContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("listing status changes: %w", err)
	}
	return changes, nil
}

// UploadFileRequest describes an uploaded document's metadata.
type UploadFileRequest struct {
	Name string `json:"name"`
	Tag  string `json:"tag,omitempty"`
}

// UploadFile records an uploaded document against the contact.
func (s *Service) UploadFile(ctx context.Context, contactID string, req UploadFileRequest) (*File, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.Get(ctx, contactID); err != nil {
		return nil, err
	}
	f := &File{
		ID:        uuid.NewString(),
		ContactID: contactID,
		Name:      req.Name,
		Tag:       req.Tag,
		CreatedAt: time.Now(),
	}
	if err := s.files.Add(ctx, f); err != nil {
		return nil, fmt.Errorf("recording file upload: %w", err)
	}
	s.notifyChanged(contactID, "file_upload")
	return f, nil
}

func (s *Service) notifyChanged(contactID, source string) {
	if s.notifier != nil {
		s.notifier.ContactChanged(contactID, source)
	}
}
