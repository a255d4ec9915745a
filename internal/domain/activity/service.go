package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidInput indicates an activity with no type or description.
var ErrInvalidInput = errors.New("invalid activity input")

// Service handles activity log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// LogActivity records an event against a lead/contact id, stamping id and
// timestamp if missing.
func (s *Service) LogActivity(ctx context.Context, leadID string, a *Activity) (*Activity, error) {
	if a == nil || strings.TrimSpace(string(a.Type)) == "" || strings.TrimSpace(a.Description) == "" {
		return nil, ErrInvalidInput
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	a.LeadID = leadID
	if err := s.repo.Log(ctx, a); err != nil {
		return nil, fmt.Errorf("logging activity: %w", err)
	}
	return a, nil
}

// GetRecentActivity lists a lead's activities, most recent first.
func (s *Service) GetRecentActivity(ctx context.Context, leadID string) ([]Activity, error) {
	return s.repo.ListByLead(ctx, leadID)
}
