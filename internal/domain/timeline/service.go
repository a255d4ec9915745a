package timeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// Service merges the five event streams for a contact into one ordered feed.
type Service struct {
	statusChanges   StatusChangeSource
	leadChanges     LeadChangeSource
	propertyLinks   PropertyLinkSource
	propertyChanges PropertyChangeSource
	activities      ActivitySource
	files           FileSource
	logger          *slog.Logger
}

// NewService creates a new timeline service.
func NewService(
	statusChanges StatusChangeSource,
	leadChanges LeadChangeSource,
	propertyLinks PropertyLinkSource,
	propertyChanges PropertyChangeSource,
	activities ActivitySource,
	files FileSource,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		statusChanges:   statusChanges,
		leadChanges:     leadChanges,
		propertyLinks:   propertyLinks,
		propertyChanges: propertyChanges,
		activities:      activities,
		files:           files,
		logger:          logger,
	}
}

// GetTimeline returns the full merged feed for a contact, most recent first.
// The result is recomputed from all five sources on every call; if any one
// fetch fails the whole read fails, never a partial list. Items sharing a
// timestamp keep a fixed source order: status, lead, property, activity, file.
func (s *Service) GetTimeline(ctx context.Context, contactID string) ([]Item, error) {
	statusChanges, err := s.statusChanges.ListByContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("%w: contact status changes: %v", ErrSourceUnavailable, err)
	}

	leadChanges, err := s.leadChanges.ListByLead(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("%w: lead status changes: %v", ErrSourceUnavailable, err)
	}

	propertyIDs, err := s.propertyLinks.PropertyIDs(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("%w: property links: %v", ErrSourceUnavailable, err)
	}
	var propertyChanges []PropertyChange
	if len(propertyIDs) > 0 {
		propertyChanges, err = s.propertyChanges.ListByProperties(ctx, propertyIDs)
		if err != nil {
			return nil, fmt.Errorf("%w: property status changes: %v", ErrSourceUnavailable, err)
		}
	}

	activities, err := s.activities.ListByLead(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("%w: activities: %v", ErrSourceUnavailable, err)
	}

	files, err := s.files.ListByContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("%w: file uploads: %v", ErrSourceUnavailable, err)
	}

	items := make([]Item, 0, len(statusChanges)+len(leadChanges)+len(propertyChanges)+len(activities)+len(files))
	for _, sc := range statusChanges {
		items = append(items, projectStatusChange(sc))
	}
	for _, lc := range leadChanges {
		items = append(items, projectLeadChange(lc))
	}
	for _, pc := range propertyChanges {
		items = append(items, projectPropertyChange(pc))
	}
	for _, a := range activities {
		items = append(items, projectActivity(a))
	}
	for _, f := range files {
		items = append(items, projectFileUpload(f))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})

	return items, nil
}
