package returns

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/returnhub/backend/internal/domain/returns"
	"github.com/returnhub/backend/internal/domain/shared"
)

func newTrackedReturn(t *testing.T, number int64) *returns.Return {
	t.Helper()
	item, err := returns.NewReturnItem(uuid.New(), nil, "Gift Card", "GIFT-01", 1, returns.ReasonOther, "")
	require.NoError(t, err)
	ret, err := returns.NewReturn(number, "Jane Doe", "jane@example.com", "", "ORD-1001",
		"The card was never activated", returns.ResolutionRefund, []returns.ReturnItem{*item})
	require.NoError(t, err)
	return ret
}

func TestTrackingService_Track_Success(t *testing.T) {
	returnRepo := new(MockReturnRepository)
	svc := NewTrackingService(returnRepo, zap.NewNop())

	ret := newTrackedReturn(t, 42)
	returnRepo.On("FindByNumber", mock.Anything, int64(42)).Return(ret, nil)

	resp, err := svc.Track(context.Background(), "RET-000042")

	require.NoError(t, err)
	assert.Equal(t, "RET-000042", resp.Number)
	assert.Equal(t, "pending", resp.Status)
	require.Len(t, resp.History, 1)
	assert.Equal(t, "system", resp.History[0].Author)
}

func TestTrackingService_Track_HistoryNewestFirst(t *testing.T) {
	returnRepo := new(MockReturnRepository)
	svc := NewTrackingService(returnRepo, zap.NewNop())

	ret := newTrackedReturn(t, 42)
	_, err := ret.Transition(returns.StatusApproved, "stock confirmed", "Admin")
	require.NoError(t, err)
	returnRepo.On("FindByNumber", mock.Anything, int64(42)).Return(ret, nil)

	resp, err := svc.Track(context.Background(), "RET-000042")

	require.NoError(t, err)
	require.Len(t, resp.History, 2)
	assert.Equal(t, "approved", resp.History[0].Status)
	assert.Equal(t, "stock confirmed", resp.History[0].Note)
	assert.Equal(t, "pending", resp.History[1].Status)
}

func TestTrackingService_Track_MalformedNumberIsNotFound(t *testing.T) {
	returnRepo := new(MockReturnRepository)
	svc := NewTrackingService(returnRepo, zap.NewNop())

	for _, input := range []string{"RET-42", "XYZ-000042", "RET-00004X", ""} {
		_, err := svc.Track(context.Background(), input)
		assert.ErrorIs(t, err, shared.ErrNotFound, "input %q", input)
	}
	returnRepo.AssertNotCalled(t, "FindByNumber", mock.Anything, mock.Anything)
}

func TestTrackingService_Track_UnknownNumberIsNotFound(t *testing.T) {
	returnRepo := new(MockReturnRepository)
	svc := NewTrackingService(returnRepo, zap.NewNop())

	returnRepo.On("FindByNumber", mock.Anything, int64(999999)).Return(nil, shared.ErrNotFound)

	_, err := svc.Track(context.Background(), "RET-999999")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
