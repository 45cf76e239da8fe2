package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/returnhub/backend/internal/domain/audit"
	"github.com/returnhub/backend/internal/domain/catalog"
	"github.com/returnhub/backend/internal/domain/returns"
	"github.com/returnhub/backend/internal/domain/shared"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

// MockAttributeRepository is a mock implementation of catalog.VariationAttributeRepository
type MockAttributeRepository struct {
	mock.Mock
}

func (m *MockAttributeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.VariationAttribute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.VariationAttribute), args.Error(1)
}

func (m *MockAttributeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.VariationAttribute, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.VariationAttribute), args.Error(1)
}

func (m *MockAttributeRepository) Save(ctx context.Context, attr *catalog.VariationAttribute) error {
	args := m.Called(ctx, attr)
	return args.Error(0)
}

func (m *MockAttributeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAttributeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttributeRepository) FindByName(ctx context.Context, name string) (*catalog.VariationAttribute, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.VariationAttribute), args.Error(1)
}

func (m *MockAttributeRepository) InUse(ctx context.Context, attributeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, attributeID)
	return args.Bool(0), args.Error(1)
}

// MockVariationRepository is a mock implementation of catalog.ProductVariationRepository
type MockVariationRepository struct {
	mock.Mock
}

func (m *MockVariationRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductVariation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductVariation), args.Error(1)
}

func (m *MockVariationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ProductVariation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ProductVariation), args.Error(1)
}

func (m *MockVariationRepository) Save(ctx context.Context, v *catalog.ProductVariation) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVariationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVariationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVariationRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*catalog.ProductVariation, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.ProductVariation), args.Error(1)
}

func (m *MockVariationRepository) FindBySKU(ctx context.Context, sku string) (*catalog.ProductVariation, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductVariation), args.Error(1)
}

func (m *MockVariationRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockVariationRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockVariationRepository) ValueInUse(ctx context.Context, attributeName, value string) (bool, error) {
	args := m.Called(ctx, attributeName, value)
	return args.Bool(0), args.Error(1)
}

// MockReturnRepository is a mock implementation of returns.Repository
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
		return nil, 0, args.Error(2)
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

// MockAuditLogger is a mock implementation of audit.Logger
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
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]audit.Entry), args.Get(1).(int64), args.Error(2)
}
