package returns

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/returnhub/backend/internal/domain/catalog"
	"github.com/returnhub/backend/internal/domain/returns"
	"github.com/returnhub/backend/internal/domain/shared"
)

func newSubmissionService(t *testing.T) (*SubmissionService, *MockReturnRepository, *MockProductRepository, *MockVariationRepository, *MockNotifier) {
	t.Helper()
	returnRepo := new(MockReturnRepository)
	productRepo := new(MockProductRepository)
	variationRepo := new(MockVariationRepository)
	notifier := new(MockNotifier)
	svc := NewSubmissionService(returnRepo, productRepo, variationRepo, notifier, time.Second, zap.NewNop())
	return svc, returnRepo, productRepo, variationRepo, notifier
}

// variedProduct builds a product with Color and Size attributes plus one
// Red/M variation.
func variedProduct(t *testing.T) (*catalog.Product, *catalog.ProductVariation) {
	t.Helper()
	color, err := catalog.NewVariationAttribute("Color")
	require.NoError(t, err)
	_, err = color.AddOption("Red")
	require.NoError(t, err)
	size, err := catalog.NewVariationAttribute("Size")
	require.NoError(t, err)
	_, err = size.AddOption("M")
	require.NoError(t, err)

	product, err := catalog.NewProduct("Wool Jacket", "JACKET-01")
	require.NoError(t, err)
	require.NoError(t, product.AttachAttribute(color))
	require.NoError(t, product.AttachAttribute(size))

	variation, err := catalog.NewProductVariation(product, "JACKET-01-RED-M", map[string]string{"Color": "Red", "Size": "M"})
	require.NoError(t, err)
	return product, variation
}

func validRequest(product *catalog.Product) SubmitReturnRequest {
	return SubmitReturnRequest{
		CustomerName:   "Jane Doe",
		CustomerEmail:  "jane@example.com",
		OrderReference: "ORD-1001",
		Description:    "The jacket arrived with a torn sleeve",
		Resolution:     string(returns.ResolutionRefund),
		Items: []SubmitItemRequest{{
			ProductID: product.ID,
			Selection: map[string]string{"Color": "Red", "Size": "M"},
			Quantity:  1,
			Reason:    string(returns.ReasonDefective),
		}},
	}
}

func TestSubmissionService_Submit_Success(t *testing.T) {
	svc, returnRepo, productRepo, variationRepo, notifier := newSubmissionService(t)
	product, variation := variedProduct(t)

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	variationRepo.On("FindByProduct", mock.Anything, product.ID).Return([]*catalog.ProductVariation{variation}, nil)
	returnRepo.On("NextNumber", mock.Anything).Return(int64(42), nil)
	returnRepo.On("Create", mock.Anything, mock.AnythingOfType("*returns.Return")).Return(nil)
	notifier.On("SendConfirmation", mock.Anything, "jane@example.com", "RET-000042", "ORD-1001").Return(nil)

	resp, err := svc.Submit(context.Background(), validRequest(product))

	require.NoError(t, err)
	assert.Equal(t, "RET-000042", resp.Number)

	created := returnRepo.Calls[1].Arguments.Get(1).(*returns.Return)
	require.Len(t, created.Items, 1)
	assert.Equal(t, "JACKET-01-RED-M", created.Items[0].SKU)
	assert.Equal(t, variation.ID, *created.Items[0].VariationID)
	assert.Equal(t, returns.StatusPending, created.Status)
	notifier.AssertExpectations(t)
}

func TestSubmissionService_Submit_ValidationErrorsAreItemized(t *testing.T) {
	svc, returnRepo, _, _, _ := newSubmissionService(t)

	_, err := svc.Submit(context.Background(), SubmitReturnRequest{
		CustomerName:  "",
		CustomerEmail: "not-an-email",
		Description:   "too short",
		Resolution:    "GOLD_BARS",
	})

	require.Error(t, err)
	var validationErr *shared.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "customer_name")
	assert.Contains(t, validationErr.Fields, "customer_email")
	assert.Contains(t, validationErr.Fields, "description")
	assert.Contains(t, validationErr.Fields, "resolution")
	assert.Contains(t, validationErr.Fields, "items")
	returnRepo.AssertNotCalled(t, "NextNumber", mock.Anything)
	returnRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmissionService_Submit_PartialSelectionFailsResolution(t *testing.T) {
	svc, returnRepo, productRepo, variationRepo, _ := newSubmissionService(t)
	product, variation := variedProduct(t)

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	variationRepo.On("FindByProduct", mock.Anything, product.ID).Return([]*catalog.ProductVariation{variation}, nil)

	req := validRequest(product)
	req.Items[0].Selection = map[string]string{"Color": "Red"}

	_, err := svc.Submit(context.Background(), req)

	require.Error(t, err)
	var itemErr *returns.ItemResolutionError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, 0, itemErr.Index)
	assert.ErrorIs(t, err, catalog.ErrVariationUnresolved)
	returnRepo.AssertNotCalled(t, "NextNumber", mock.Anything)
	returnRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmissionService_Submit_ProductWithoutAttributes(t *testing.T) {
	svc, returnRepo, productRepo, _, notifier := newSubmissionService(t)

	product, err := catalog.NewProduct("Gift Card", "GIFT-01")
	require.NoError(t, err)

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	returnRepo.On("NextNumber", mock.Anything).Return(int64(7), nil)
	returnRepo.On("Create", mock.Anything, mock.AnythingOfType("*returns.Return")).Return(nil)
	notifier.On("SendConfirmation", mock.Anything, mock.Anything, "RET-000007", mock.Anything).Return(nil)

	req := validRequest(product)
	req.Items[0].Selection = nil

	resp, err := svc.Submit(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "RET-000007", resp.Number)

	created := returnRepo.Calls[1].Arguments.Get(1).(*returns.Return)
	assert.Equal(t, "GIFT-01", created.Items[0].SKU)
	assert.Nil(t, created.Items[0].VariationID)
}

func TestSubmissionService_Submit_NotificationFailureDoesNotFailSubmission(t *testing.T) {
	svc, returnRepo, productRepo, variationRepo, notifier := newSubmissionService(t)
	product, variation := variedProduct(t)

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	variationRepo.On("FindByProduct", mock.Anything, product.ID).Return([]*catalog.ProductVariation{variation}, nil)
	returnRepo.On("NextNumber", mock.Anything).Return(int64(42), nil)
	returnRepo.On("Create", mock.Anything, mock.AnythingOfType("*returns.Return")).Return(nil)
	notifier.On("SendConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	resp, err := svc.Submit(context.Background(), validRequest(product))

	require.NoError(t, err)
	assert.Equal(t, "RET-000042", resp.Number)
}

func TestSubmissionService_Submit_PersistFailureSurfaces(t *testing.T) {
	svc, returnRepo, productRepo, variationRepo, notifier := newSubmissionService(t)
	product, variation := variedProduct(t)

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	variationRepo.On("FindByProduct", mock.Anything, product.ID).Return([]*catalog.ProductVariation{variation}, nil)
	returnRepo.On("NextNumber", mock.Anything).Return(int64(42), nil)
	returnRepo.On("Create", mock.Anything, mock.AnythingOfType("*returns.Return")).Return(assert.AnError)

	_, err := svc.Submit(context.Background(), validRequest(product))

	require.Error(t, err)
	notifier.AssertNotCalled(t, "SendConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmissionService_Submit_AttachesImages(t *testing.T) {
	svc, returnRepo, productRepo, _, notifier := newSubmissionService(t)

	product, err := catalog.NewProduct("Gift Card", "GIFT-01")
	require.NoError(t, err)

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	returnRepo.On("NextNumber", mock.Anything).Return(int64(8), nil)
	returnRepo.On("Create", mock.Anything, mock.AnythingOfType("*returns.Return")).Return(nil)
	notifier.On("SendConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	req := validRequest(product)
	req.Items[0].Selection = nil
	req.Images = []ImageRef{{URL: "https://cdn.example.com/returns/torn.jpg", Filename: "torn.jpg"}}

	_, err = svc.Submit(context.Background(), req)

	require.NoError(t, err)
	created := returnRepo.Calls[1].Arguments.Get(1).(*returns.Return)
	require.Len(t, created.Images, 1)
	assert.Equal(t, "https://cdn.example.com/returns/torn.jpg", created.Images[0].URL)
}
