package mocks

import (
	"context"

	"github.com/casaflow/casaflow/internal/domain/activity"
	"github.com/casaflow/casaflow/internal/domain/contact"
	"github.com/casaflow/casaflow/internal/domain/timeline"
	"github.com/stretchr/testify/mock"
)

// ContactRepository is a mock for repository.ContactRepository.
type ContactRepository struct {
	mock.Mock
}

func (m *ContactRepository) Get(ctx context.Context, id string) (*contact.Contact, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*contact.Contact); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ContactRepository) Create(ctx context.Context, c *contact.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ContactRepository) SetStatus(ctx context.Context, id string, mode contact.StatusMode, effective contact.Status, manual *contact.Status) error {
	args := m.Called(ctx, id, mode, effective, manual)
	return args.Error(0)
}

func (m *ContactRepository) SetMode(ctx context.Context, id string, mode contact.StatusMode) error {
	args := m.Called(ctx, id, mode)
	return args.Error(0)
}

// StatusChangeRepository is a mock for repository.StatusChangeRepository.
type StatusChangeRepository struct {
	mock.Mock
}

func (m *StatusChangeRepository) Append(ctx context.Context, change *contact.StatusChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *StatusChangeRepository) ListByContact(ctx context.Context, contactID string) ([]contact.StatusChange, error) {
	args := m.Called(ctx, contactID)
	if list, ok := args.Get(0).([]contact.StatusChange); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// LeadChangeRepository is a mock for repository.LeadChangeRepository.
type LeadChangeRepository struct {
	mock.Mock
}

func (m *LeadChangeRepository) Record(ctx context.Context, change *timeline.LeadChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *LeadChangeRepository) ListByLead(ctx context.Context, leadID string) ([]timeline.LeadChange, error) {
	args := m.Called(ctx, leadID)
	if list, ok := args.Get(0).([]timeline.LeadChange); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// PropertyRepository is a mock for repository.PropertyRepository.
type PropertyRepository struct {
	mock.Mock
}

func (m *PropertyRepository) Link(ctx context.Context, contactID, propertyID, role string) error {
	args := m.Called(ctx, contactID, propertyID, role)
	return args.Error(0)
}

func (m *PropertyRepository) PropertyIDs(ctx context.Context, contactID string) ([]string, error) {
	args := m.Called(ctx, contactID)
	if ids, ok := args.Get(0).([]string); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PropertyRepository) RecordChange(ctx context.Context, change *timeline.PropertyChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *PropertyRepository) ListByProperties(ctx context.Context, propertyIDs []string) ([]timeline.PropertyChange, error) {
	args := m.Called(ctx, propertyIDs)
	if list, ok := args.Get(0).([]timeline.PropertyChange); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for repository.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, a *activity.Activity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *ActivityRepository) ListByLead(ctx context.Context, leadID string) ([]activity.Activity, error) {
	args := m.Called(ctx, leadID)
	if list, ok := args.Get(0).([]activity.Activity); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// FileRepository is a mock for repository.FileRepository.
type FileRepository struct {
	mock.Mock
}

func (m *FileRepository) Add(ctx context.Context, f *contact.File) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *FileRepository) ListByContact(ctx context.Context, contactID string) ([]contact.File, error) {
	args := m.Called(ctx, contactID)
	if list, ok := args.Get(0).([]contact.File); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// StatusRecomputer is a mock for contact.StatusRecomputer.
type StatusRecomputer struct {
	mock.Mock
}

func (m *StatusRecomputer) RecomputeStatus(ctx context.Context, contactID, reason string) error {
	args := m.Called(ctx, contactID, reason)
	return args.Error(0)
}

// RefreshNotifier is a mock for contact.RefreshNotifier.
type RefreshNotifier struct {
	mock.Mock
}

func (m *RefreshNotifier) ContactChanged(contactID, source string) {
	m.Called(contactID, source)
}
