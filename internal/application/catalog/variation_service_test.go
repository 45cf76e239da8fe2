package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/returnhub/backend/internal/domain/catalog"
	"github.com/returnhub/backend/internal/domain/shared"
)

func newVariationService(t *testing.T) (*VariationService, *MockProductRepository, *MockAttributeRepository, *MockVariationRepository, *MockAuditLogger) {
	t.Helper()
	productRepo := new(MockProductRepository)
	attributeRepo := new(MockAttributeRepository)
	variationRepo := new(MockVariationRepository)
	auditLog := new(MockAuditLogger)
	svc := NewVariationService(productRepo, attributeRepo, variationRepo, auditLog, zap.NewNop())
	return svc, productRepo, attributeRepo, variationRepo, auditLog
}

// sizedProduct builds a product with a Size attribute carrying S and M.
func sizedProduct(t *testing.T) (*catalog.Product, *catalog.VariationAttribute) {
	t.Helper()
	size, err := catalog.NewVariationAttribute("Size")
	require.NoError(t, err)
	for _, v := range []string{"S", "M"} {
		_, err := size.AddOption(v)
		require.NoError(t, err)
	}
	product, err := catalog.NewProduct("Cotton T-Shirt", "TSHIRT-01")
	require.NoError(t, err)
	require.NoError(t, product.AttachAttribute(size))
	return product, size
}

func TestVariationService_Create_Success(t *testing.T) {
	svc, productRepo, attributeRepo, variationRepo, auditLog := newVariationService(t)
	product, size := sizedProduct(t)

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	variationRepo.On("ExistsBySKU", mock.Anything, "TSHIRT-01-M").Return(false, nil)
	attributeRepo.On("FindByID", mock.Anything, size.ID).Return(size, nil)
	variationRepo.On("FindByProduct", mock.Anything, product.ID).Return([]*catalog.ProductVariation{}, nil)
	variationRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.ProductVariation")).Return(nil)
	auditLog.On("Record", mock.Anything, mock.AnythingOfType("audit.Entry")).Return(nil)

	resp, err := svc.Create(context.Background(), testActor(), product.ID, CreateVariationRequest{
		SKU:    "tshirt-01-m",
		Values: map[string]string{"Size": "M"},
	})

	require.NoError(t, err)
	assert.Equal(t, "TSHIRT-01-M", resp.SKU)
	assert.Equal(t, map[string]string{"Size": "M"}, resp.Values)
}

func TestVariationService_Create_ValueNotAnOption(t *testing.T) {
	svc, productRepo, attributeRepo, variationRepo, _ := newVariationService(t)
	product, size := sizedProduct(t)

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	variationRepo.On("ExistsBySKU", mock.Anything, "TSHIRT-01-XL").Return(false, nil)
	attributeRepo.On("FindByID", mock.Anything, size.ID).Return(size, nil)

	_, err := svc.Create(context.Background(), testActor(), product.ID, CreateVariationRequest{
		SKU:    "TSHIRT-01-XL",
		Values: map[string]string{"Size": "XL"},
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_OPTION", domainErr.Code)
	variationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestVariationService_Create_DuplicateAssignment(t *testing.T) {
	svc, productRepo, attributeRepo, variationRepo, _ := newVariationService(t)
	product, size := sizedProduct(t)

	existing, err := catalog.NewProductVariation(product, "TSHIRT-01-M", map[string]string{"Size": "M"})
	require.NoError(t, err)

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	variationRepo.On("ExistsBySKU", mock.Anything, "TSHIRT-01-M2").Return(false, nil)
	attributeRepo.On("FindByID", mock.Anything, size.ID).Return(size, nil)
	variationRepo.On("FindByProduct", mock.Anything, product.ID).Return([]*catalog.ProductVariation{existing}, nil)

	_, err = svc.Create(context.Background(), testActor(), product.ID, CreateVariationRequest{
		SKU:    "TSHIRT-01-M2",
		Values: map[string]string{"Size": "M"},
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	variationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestVariationService_Update_KeepsOwnAssignment(t *testing.T) {
	svc, productRepo, attributeRepo, variationRepo, auditLog := newVariationService(t)
	product, size := sizedProduct(t)

	variation, err := catalog.NewProductVariation(product, "TSHIRT-01-M", map[string]string{"Size": "M"})
	require.NoError(t, err)

	variationRepo.On("FindByID", mock.Anything, variation.ID).Return(variation, nil)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	attributeRepo.On("FindByID", mock.Anything, size.ID).Return(size, nil)
	variationRepo.On("FindByProduct", mock.Anything, product.ID).Return([]*catalog.ProductVariation{variation}, nil)
	variationRepo.On("Save", mock.Anything, variation).Return(nil)
	auditLog.On("Record", mock.Anything, mock.AnythingOfType("audit.Entry")).Return(nil)

	resp, err := svc.Update(context.Background(), testActor(), variation.ID, UpdateVariationRequest{
		Values: map[string]string{"Size": "S"},
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Size": "S"}, resp.Values)
}

func TestVariationService_AvailableOptions_FiltersBySelection(t *testing.T) {
	svc, productRepo, _, variationRepo, _ := newVariationService(t)
	product, _ := sizedProduct(t)

	small, err := catalog.NewProductVariation(product, "TSHIRT-01-S", map[string]string{"Size": "S"})
	require.NoError(t, err)

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	variationRepo.On("FindByProduct", mock.Anything, product.ID).Return([]*catalog.ProductVariation{small}, nil)

	resp, err := svc.AvailableOptions(context.Background(), product.ID, AvailableOptionsRequest{
		Attribute: "Size",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"S"}, resp.Options)
}

func TestVariationService_Resolve_CompleteSelection(t *testing.T) {
	svc, productRepo, _, variationRepo, _ := newVariationService(t)
	product, _ := sizedProduct(t)

	small, err := catalog.NewProductVariation(product, "TSHIRT-01-S", map[string]string{"Size": "S"})
	require.NoError(t, err)

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	variationRepo.On("FindByProduct", mock.Anything, product.ID).Return([]*catalog.ProductVariation{small}, nil)

	resp, err := svc.Resolve(context.Background(), product.ID, ResolveRequest{
		Selection: map[string]string{"Size": "S"},
	})

	require.NoError(t, err)
	assert.Equal(t, "TSHIRT-01-S", resp.SKU)
	require.NotNil(t, resp.Variation)
	assert.Equal(t, small.ID, resp.Variation.ID)
}

func TestVariationService_Resolve_ProductWithoutAttributes(t *testing.T) {
	svc, productRepo, _, variationRepo, _ := newVariationService(t)

	product, err := catalog.NewProduct("Gift Card", "GIFT-01")
	require.NoError(t, err)

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	variationRepo.On("FindByProduct", mock.Anything, product.ID).Return([]*catalog.ProductVariation{}, nil)

	resp, err := svc.Resolve(context.Background(), product.ID, ResolveRequest{Selection: map[string]string{}})

	require.NoError(t, err)
	assert.Equal(t, "GIFT-01", resp.SKU)
	assert.Nil(t, resp.Variation)
}

func TestVariationService_Resolve_IncompleteSelection(t *testing.T) {
	svc, productRepo, _, variationRepo, _ := newVariationService(t)
	product, _ := sizedProduct(t)

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	variationRepo.On("FindByProduct", mock.Anything, product.ID).Return([]*catalog.ProductVariation{}, nil)

	_, err := svc.Resolve(context.Background(), product.ID, ResolveRequest{Selection: map[string]string{}})
	assert.ErrorIs(t, err, catalog.ErrVariationUnresolved)
}
