package contact_test

import (
	"context"
	"errors"
	"testing"

	"github.com/casaflow/casaflow/internal/domain/contact"
	"github.com/casaflow/casaflow/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func autoActiveContact(id string) *contact.Contact {
	return &contact.Contact{
		ID:              id,
		Name:            "Dana Reyes",
		StatusMode:      contact.ModeAuto,
		StatusEffective: contact.StatusActive,
	}
}

func manualContact(id string, status contact.Status) *contact.Contact {
	manual := status
	return &contact.Contact{
		ID:              id,
		Name:            "Dana Reyes",
		StatusMode:      contact.ModeManual,
		StatusEffective: status,
		StatusManual:    &manual,
	}
}

var admin = contact.Actor{ID: "u1", Role: contact.RoleAdmin}
var agent = contact.Actor{ID: "u2", Role: contact.RoleAgent}

func TestContactService_SetMode_FreezesEffectiveIntoManual(t *testing.T) {
	ctx := context.Background()

	contacts := &mocks.ContactRepository{}
	changes := &mocks.StatusChangeRepository{}
	notifier := &mocks.RefreshNotifier{}

	contacts.On("Get", ctx, "c1").Return(autoActiveContact("c1"), nil)
	contacts.On("SetStatus", ctx, "c1", contact.ModeManual, contact.StatusActive, mock.Anything).Return(nil)
	notifier.On("ContactChanged", "c1", "set_mode").Return()

	svc := contact.NewService(contacts, changes, nil, nil, notifier, nil)
	c, err := svc.SetMode(ctx, admin, "c1", contact.ModeManual)
	require.NoError(t, err)
	require.Equal(t, contact.ModeManual, c.StatusMode)
	require.Equal(t, contact.StatusActive, c.StatusEffective)
	require.NotNil(t, c.StatusManual)
	require.Equal(t, contact.StatusActive, *c.StatusManual)

	// Entering manual mode leaves the effective value untouched, so the
	// ledger gets nothing.
	changes.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	notifier.AssertCalled(t, "ContactChanged", "c1", "set_mode")
}

func TestContactService_SetMode_SameModeIsNoOp(t *testing.T) {
	ctx := context.Background()

	contacts := &mocks.ContactRepository{}
	recomputer := &mocks.StatusRecomputer{}
	notifier := &mocks.RefreshNotifier{}

	contacts.On("Get", ctx, "c1").Return(autoActiveContact("c1"), nil)

	svc := contact.NewService(contacts, &mocks.StatusChangeRepository{}, nil, recomputer, notifier, nil)
	c, err := svc.SetMode(ctx, admin, "c1", contact.ModeAuto)
	require.NoError(t, err)
	require.Equal(t, contact.ModeAuto, c.StatusMode)

	contacts.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	contacts.AssertNotCalled(t, "SetMode", mock.Anything, mock.Anything, mock.Anything)
	recomputer.AssertNotCalled(t, "RecomputeStatus", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "ContactChanged", mock.Anything, mock.Anything)
}

func TestContactService_SetMode_BackToAutoTriggersRecompute(t *testing.T) {
	ctx := context.Background()

	contacts := &mocks.ContactRepository{}
	recomputer := &mocks.StatusRecomputer{}
	notifier := &mocks.RefreshNotifier{}

	contacts.On("Get", ctx, "c1").Return(manualContact("c1", contact.StatusPast), nil)
	contacts.On("SetMode", ctx, "c1", contact.ModeAuto).Return(nil)
	recomputer.On("RecomputeStatus", ctx, "c1", contact.ReasonManualTrigger).Return(nil)
	notifier.On("ContactChanged", "c1", "set_mode").Return()

	svc := contact.NewService(contacts, &mocks.StatusChangeRepository{}, nil, recomputer, notifier, nil)
	_, err := svc.SetMode(ctx, admin, "c1", contact.ModeAuto)
	require.NoError(t, err)

	recomputer.AssertCalled(t, "RecomputeStatus", ctx, "c1", contact.ReasonManualTrigger)
}

func TestContactService_SetMode_RecomputeFailurePropagates(t *testing.T) {
	ctx := context.Background()

	contacts := &mocks.ContactRepository{}
	recomputer := &mocks.StatusRecomputer{}
	notifier := &mocks.RefreshNotifier{}

	contacts.On("Get", ctx, "c1").Return(manualContact("c1", contact.StatusPast), nil)
	contacts.On("SetMode", ctx, "c1", contact.ModeAuto).Return(nil)
	recomputer.On("RecomputeStatus", ctx, "c1", contact.ReasonManualTrigger).Return(errors.New("procedure timeout"))

	svc := contact.NewService(contacts, &mocks.StatusChangeRepository{}, nil, recomputer, notifier, nil)
	_, err := svc.SetMode(ctx, admin, "c1", contact.ModeAuto)
	require.Error(t, err)
	notifier.AssertNotCalled(t, "ContactChanged", mock.Anything, mock.Anything)
}

func TestContactService_SetMode_RequiresAdmin(t *testing.T) {
	ctx := context.Background()

	contacts := &mocks.ContactRepository{}

	svc := contact.NewService(contacts, &mocks.StatusChangeRepository{}, nil, nil, nil, nil)
	_, err := svc.SetMode(ctx, agent, "c1", contact.ModeManual)
	require.ErrorIs(t, err, contact.ErrNotAuthorized)

	contacts.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestContactService_SetManualStatus_WritesStatusThenAudit(t *testing.T) {
	ctx := context.Background()

	contacts := &mocks.ContactRepository{}
	changes := &mocks.StatusChangeRepository{}
	notifier := &mocks.RefreshNotifier{}

	contacts.On("Get", ctx, "c1").Return(manualContact("c1", contact.StatusActive), nil)
	contacts.On("SetStatus", ctx, "c1", contact.ModeManual, contact.StatusPast, mock.Anything).Return(nil)
	changes.On("Append", ctx, mock.MatchedBy(func(change *contact.StatusChange) bool {
		return change.ContactID == "c1" &&
			change.OldStatus == contact.StatusActive &&
			change.NewStatus == contact.StatusPast &&
			change.Reason == contact.ReasonManualOverride &&
			change.ChangedBy != nil && *change.ChangedBy == "u1"
	})).Return(nil)
	notifier.On("ContactChanged", "c1", "set_manual_status").Return()

	svc := contact.NewService(contacts, changes, nil, nil, notifier, nil)
	c, err := svc.SetManualStatus(ctx, admin, "c1", contact.StatusPast)
	require.NoError(t, err)
	require.Equal(t, contact.StatusPast, c.StatusEffective)
	require.NotNil(t, c.StatusManual)
	require.Equal(t, contact.StatusPast, *c.StatusManual)

	changes.AssertNumberOfCalls(t, "Append", 1)
}

func TestContactService_SetManualStatus_RejectedInAutoMode(t *testing.T) {
	ctx := context.Background()

	contacts := &mocks.ContactRepository{}
	changes := &mocks.StatusChangeRepository{}

	contacts.On("Get", ctx, "c1").Return(autoActiveContact("c1"), nil)

	svc := contact.NewService(contacts, changes, nil, nil, nil, nil)
	_, err := svc.SetManualStatus(ctx, admin, "c1", contact.StatusPast)
	require.ErrorIs(t, err, contact.ErrInvalidTransition)

	contacts.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	changes.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestContactService_SetManualStatus_UnchangedValueSkipsAudit(t *testing.T) {
	ctx := context.Background()

	contacts := &mocks.ContactRepository{}
	changes := &mocks.StatusChangeRepository{}
	notifier := &mocks.RefreshNotifier{}

	contacts.On("Get", ctx, "c1").Return(manualContact("c1", contact.StatusPast), nil)
	contacts.On("SetStatus", ctx, "c1", contact.ModeManual, contact.StatusPast, mock.Anything).Return(nil)
	notifier.On("ContactChanged", "c1", "set_manual_status").Return()

	svc := contact.NewService(contacts, changes, nil, nil, notifier, nil)
	_, err := svc.SetManualStatus(ctx, admin, "c1", contact.StatusPast)
	require.NoError(t, err)

	changes.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestContactService_SetManualStatus_AuditFailureDoesNotFailCall(t *testing.T) {
	ctx := context.Background()

	contacts := &mocks.ContactRepository{}
	changes := &mocks.StatusChangeRepository{}
	notifier := &mocks.RefreshNotifier{}

	contacts.On("Get", ctx, "c1").Return(manualContact("c1", contact.StatusActive), nil)
	contacts.On("SetStatus", ctx, "c1", contact.ModeManual, contact.StatusPast, mock.Anything).Return(nil)
	changes.On("Append", ctx, mock.Anything).Return(errors.New("ledger unavailable"))
	notifier.On("ContactChanged", "c1", "set_manual_status").Return()

	svc := contact.NewService(contacts, changes, nil, nil, notifier, nil)
	c, err := svc.SetManualStatus(ctx, admin, "c1", contact.StatusPast)
	require.NoError(t, err)
	require.Equal(t, contact.StatusPast, c.StatusEffective)
}

func TestContactService_SetManualStatus_StatusWriteFailureAborts(t *testing.T) {
	ctx := context.Background()

	contacts := &mocks.ContactRepository{}
	changes := &mocks.StatusChangeRepository{}
	notifier := &mocks.RefreshNotifier{}

	contacts.On("Get", ctx, "c1").Return(manualContact("c1", contact.StatusActive), nil)
	contacts.On("SetStatus", ctx, "c1", contact.ModeManual, contact.StatusPast, mock.Anything).Return(errors.New("connection reset"))

	svc := contact.NewService(contacts, changes, nil, nil, notifier, nil)
	_, err := svc.SetManualStatus(ctx, admin, "c1", contact.StatusPast)
	require.Error(t, err)

	changes.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "ContactChanged", mock.Anything, mock.Anything)
}

func TestContactService_SetManualStatus_RequiresAdmin(t *testing.T) {
	ctx := context.Background()

	contacts := &mocks.ContactRepository{}

	svc := contact.NewService(contacts, &mocks.StatusChangeRepository{}, nil, nil, nil, nil)
	_, err := svc.SetManualStatus(ctx, agent, "c1", contact.StatusActive)
	require.ErrorIs(t, err, contact.ErrNotAuthorized)

	contacts.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestContactService_SetManualStatus_InvalidValue(t *testing.T) {
	ctx := context.Background()

	svc := contact.NewService(&mocks.ContactRepository{}, &mocks.StatusChangeRepository{}, nil, nil, nil, nil)
	_, err := svc.SetManualStatus(ctx, admin, "c1", contact.Status("archived"))
	require.ErrorIs(t, err, contact.ErrInvalidStatus)
}

func TestContactService_Create_DefaultsToAutoActive(t *testing.T) {
	ctx := context.Background()

	contacts := &mocks.ContactRepository{}
	contacts.On("Create", ctx, mock.Anything).Return(nil)

	svc := contact.NewService(contacts, &mocks.StatusChangeRepository{}, nil, nil, nil, nil)
	c, err := svc.Create(ctx, contact.CreateRequest{Name: "Dana Reyes"})
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
	require.Equal(t, contact.ModeAuto, c.StatusMode)
	require.Equal(t, contact.StatusActive, c.StatusEffective)
	require.Nil(t, c.StatusManual)
}

func TestContactService_UploadFile_RecordsMetadata(t *testing.T) {
	ctx := context.Background()

	contacts := &mocks.ContactRepository{}
	files := &mocks.FileRepository{}
	notifier := &mocks.RefreshNotifier{}

	contacts.On("Get", ctx, "c1").Return(autoActiveContact("c1"), nil)
	files.On("Add", ctx, mock.Anything).Return(nil)
	notifier.On("ContactChanged", "c1", "file_upload").Return()

	svc := contact.NewService(contacts, &mocks.StatusChangeRepository{}, files, nil, notifier, nil)
	f, err := svc.UploadFile(ctx, "c1", contact.UploadFileRequest{Name: "disclosure.pdf", Tag: "contract"})
	require.NoError(t, err)
	require.Equal(t, "c1", f.ContactID)
	require.Equal(t, "disclosure.pdf", f.Name)
}
