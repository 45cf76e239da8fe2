package returns

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/returnhub/backend/internal/domain/audit"
	"github.com/returnhub/backend/internal/domain/identity"
	"github.com/returnhub/backend/internal/domain/returns"
	"github.com/returnhub/backend/internal/domain/shared"
)

func newAdminService(t *testing.T) (*AdminService, *MockReturnRepository, *MockNotifier, *MockAuditLogger) {
	t.Helper()
	returnRepo := new(MockReturnRepository)
	notifier := new(MockNotifier)
	auditLog := new(MockAuditLogger)
	svc := NewAdminService(returnRepo, notifier, auditLog, time.Second, zap.NewNop())
	return svc, returnRepo, notifier, auditLog
}

func adminActor() identity.Actor {
	return identity.Actor{ID: uuid.New(), Email: "admin@example.com", Name: "Admin"}
}

func TestAdminService_UpdateStatus_Success(t *testing.T) {
	svc, returnRepo, notifier, auditLog := newAdminService(t)
	ret := newTrackedReturn(t, 42)

	returnRepo.On("FindByID", mock.Anything, ret.ID).Return(ret, nil)
	returnRepo.On("RecordTransition", mock.Anything, ret.ID, returns.StatusApproved, mock.AnythingOfType("returns.StatusHistoryEntry")).Return(nil)
	notifier.On("SendStatusUpdate", mock.Anything, "jane@example.com", "RET-000042", returns.StatusApproved, "looks fine").Return(nil)
	auditLog.On("Record", mock.Anything, mock.MatchedBy(func(e audit.Entry) bool {
		return e.Action == audit.ActionUpdateReturnStatus
	})).Return(nil)

	resp, err := svc.UpdateStatus(context.Background(), adminActor(), ret.ID, UpdateStatusRequest{
		Status: "approved",
		Note:   "looks fine",
	})

	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Return.Status)
	require.Len(t, resp.Return.History, 2)
	// History reads newest-first: the fresh transition leads
	assert.Equal(t, "approved", resp.Return.History[0].Status)
	assert.Equal(t, "Admin", resp.Return.History[0].Author)
	assert.Equal(t, "pending", resp.Return.History[1].Status)
	assert.True(t, resp.Notification.CustomerSent)
	returnRepo.AssertExpectations(t)
	auditLog.AssertExpectations(t)
}

func TestAdminService_UpdateStatus_IllegalTransition(t *testing.T) {
	svc, returnRepo, notifier, _ := newAdminService(t)
	ret := newTrackedReturn(t, 42)

	returnRepo.On("FindByID", mock.Anything, ret.ID).Return(ret, nil)

	_, err := svc.UpdateStatus(context.Background(), adminActor(), ret.ID, UpdateStatusRequest{
		Status: "refund_issued",
	})

	require.Error(t, err)
	var transitionErr *returns.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	returnRepo.AssertNotCalled(t, "RecordTransition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "SendStatusUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminService_UpdateStatus_NotificationFailureKeepsTransition(t *testing.T) {
	svc, returnRepo, notifier, auditLog := newAdminService(t)
	ret := newTrackedReturn(t, 42)

	returnRepo.On("FindByID", mock.Anything, ret.ID).Return(ret, nil)
	returnRepo.On("RecordTransition", mock.Anything, ret.ID, returns.StatusApproved, mock.AnythingOfType("returns.StatusHistoryEntry")).Return(nil)
	notifier.On("SendStatusUpdate", mock.Anything, mock.Anything, mock.Anything, returns.StatusApproved, mock.Anything).Return(assert.AnError)
	auditLog.On("Record", mock.Anything, mock.AnythingOfType("audit.Entry")).Return(nil)

	resp, err := svc.UpdateStatus(context.Background(), adminActor(), ret.ID, UpdateStatusRequest{Status: "approved"})

	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Return.Status)
	assert.False(t, resp.Notification.CustomerSent)
	assert.NotEmpty(t, resp.Notification.CustomerErr)
}

func TestAdminService_AddNote_Success(t *testing.T) {
	svc, returnRepo, _, auditLog := newAdminService(t)
	ret := newTrackedReturn(t, 42)

	returnRepo.On("FindByID", mock.Anything, ret.ID).Return(ret, nil)
	returnRepo.On("AddNote", mock.Anything, mock.AnythingOfType("returns.InternalNote")).Return(nil)
	auditLog.On("Record", mock.Anything, mock.MatchedBy(func(e audit.Entry) bool {
		return e.Action == audit.ActionAddInternalNote
	})).Return(nil)

	resp, err := svc.AddNote(context.Background(), adminActor(), ret.ID, AddNoteRequest{Body: "customer called about this one"})

	require.NoError(t, err)
	require.Len(t, resp.Notes, 1)
	assert.Equal(t, "Admin", resp.Notes[0].Author)
	auditLog.AssertExpectations(t)
}

func TestAdminService_ResendNotification_IndependentSends(t *testing.T) {
	svc, returnRepo, notifier, auditLog := newAdminService(t)
	ret := newTrackedReturn(t, 42)

	returnRepo.On("FindByID", mock.Anything, ret.ID).Return(ret, nil)
	notifier.On("SendStatusUpdate", mock.Anything, "jane@example.com", "RET-000042", returns.StatusPending, returns.InitialHistoryNote).Return(assert.AnError)
	notifier.On("SendAdminNotice", mock.Anything, "RET-000042", returns.StatusPending, ret.ID).Return(nil)
	auditLog.On("Record", mock.Anything, mock.MatchedBy(func(e audit.Entry) bool {
		return e.Action == audit.ActionResendNotification
	})).Return(nil)

	resp, err := svc.ResendNotification(context.Background(), adminActor(), ret.ID)

	require.NoError(t, err)
	assert.False(t, resp.CustomerSent)
	assert.True(t, resp.AdminSent)
	notifier.AssertExpectations(t)
}

func TestAdminService_Delete_Success(t *testing.T) {
	svc, returnRepo, _, auditLog := newAdminService(t)
	ret := newTrackedReturn(t, 42)

	returnRepo.On("FindByID", mock.Anything, ret.ID).Return(ret, nil)
	returnRepo.On("Delete", mock.Anything, ret.ID).Return(nil)
	auditLog.On("Record", mock.Anything, mock.MatchedBy(func(e audit.Entry) bool {
		return e.Action == audit.ActionDeleteReturn
	})).Return(nil)

	err := svc.Delete(context.Background(), adminActor(), ret.ID)

	require.NoError(t, err)
	returnRepo.AssertExpectations(t)
	auditLog.AssertExpectations(t)
}

func TestAdminService_Delete_NotFound(t *testing.T) {
	svc, returnRepo, _, _ := newAdminService(t)

	id := uuid.New()
	returnRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	err := svc.Delete(context.Background(), adminActor(), id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	returnRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAdminService_List_ParsesStatusFilter(t *testing.T) {
	svc, returnRepo, _, _ := newAdminService(t)
	ret := newTrackedReturn(t, 42)

	returnRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f returns.Filter) bool {
		return f.Status != nil && *f.Status == returns.StatusPending && f.Page == 1 && f.PageSize == 20
	})).Return([]*returns.Return{ret}, int64(1), nil)

	resp, err := svc.List(context.Background(), ListReturnsQuery{Status: "pending"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, 1, resp.TotalPages)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "RET-000042", resp.Items[0].Number)
}

func TestAdminService_List_RejectsUnknownStatus(t *testing.T) {
	svc, returnRepo, _, _ := newAdminService(t)

	_, err := svc.List(context.Background(), ListReturnsQuery{Status: "misplaced"})

	require.Error(t, err)
	returnRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

func TestAdminService_Summary_CoversAllStatuses(t *testing.T) {
	svc, returnRepo, _, _ := newAdminService(t)

	returnRepo.On("CountByStatus", mock.Anything).Return(map[returns.Status]int64{
		returns.StatusPending:  3,
		returns.StatusApproved: 1,
	}, nil)

	resp, err := svc.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.Total)
	assert.Equal(t, int64(3), resp.Counts["pending"])
	assert.Equal(t, int64(0), resp.Counts["completed"])
	assert.Len(t, resp.Counts, len(returns.AllStatuses))
}
