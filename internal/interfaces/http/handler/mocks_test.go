package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/returnhub/backend/internal/domain/audit"
	"github.com/returnhub/backend/internal/domain/returns"
)

// MockReturnRepository implements returns.Repository for testing
type MockReturnRepository struct {
	mock.Mock
}

func (m *MockReturnRepository) NextNumber(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReturnRepository) Create(ctx context.Context, r *returns.Return) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*returns.Return, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.Return), args.Error(1)
}

func (m *MockReturnRepository) FindByNumber(ctx context.Context, number int64) (*returns.Return, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.Return), args.Error(1)
}

func (m *MockReturnRepository) FindAll(ctx context.Context, filter returns.Filter) ([]*returns.Return, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*returns.Return), args.Get(1).(int64), args.Error(2)
}

func (m *MockReturnRepository) CountByStatus(ctx context.Context) (map[returns.Status]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[returns.Status]int64), args.Error(1)
}

func (m *MockReturnRepository) RecordTransition(ctx context.Context, returnID uuid.UUID, status returns.Status, entry returns.StatusHistoryEntry) error {
	args := m.Called(ctx, returnID, status, entry)
	return args.Error(0)
}

func (m *MockReturnRepository) AddNote(ctx context.Context, note returns.InternalNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReturnRepository) HasItemsForProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

// MockNotifier implements returns.Notifier for testing
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendConfirmation(ctx context.Context, email, displayNumber, orderReference string) error {
	args := m.Called(ctx, email, displayNumber, orderReference)
	return args.Error(0)
}

func (m *MockNotifier) SendStatusUpdate(ctx context.Context, email, displayNumber string, status returns.Status, note string) error {
	args := m.Called(ctx, email, displayNumber, status, note)
	return args.Error(0)
}

func (m *MockNotifier) SendAdminNotice(ctx context.Context, displayNumber string, status returns.Status, returnID uuid.UUID) error {
	args := m.Called(ctx, displayNumber, status, returnID)
	return args.Error(0)
}

// MockAuditLogger implements audit.Logger for testing
type MockAuditLogger struct {
	mock.Mock
}

func (m *MockAuditLogger) Record(ctx context.Context, entry audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogger) List(ctx context.Context, page, pageSize int) ([]audit.Entry, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]audit.Entry), args.Get(1).(int64), args.Error(2)
}
