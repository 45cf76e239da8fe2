package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/returnhub/backend/internal/domain/audit"
	"github.com/returnhub/backend/internal/domain/catalog"
	"github.com/returnhub/backend/internal/domain/identity"
	"github.com/returnhub/backend/internal/domain/returns"
	"github.com/returnhub/backend/internal/domain/shared"
)

// ProductService handles product administration
type ProductService struct {
	productRepo   catalog.ProductRepository
	attributeRepo catalog.VariationAttributeRepository
	variationRepo catalog.ProductVariationRepository
	returnRepo    returns.Repository
	auditLog      audit.Logger
	logger        *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	attributeRepo catalog.VariationAttributeRepository,
	variationRepo catalog.ProductVariationRepository,
	returnRepo returns.Repository,
	auditLog audit.Logger,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		attributeRepo: attributeRepo,
		variationRepo: variationRepo,
		returnRepo:    returnRepo,
		auditLog:      auditLog,
		logger:        logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, actor identity.Actor, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, strings.ToUpper(req.SKU))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	product, err := catalog.NewProduct(req.Name, req.SKU)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, audit.ActionCreateProduct, product.ID, "created product "+product.SKU)

	return ToProductResponse(product), nil
}

// Update updates a product's name and SKU
func (s *ProductService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newSKU := strings.ToUpper(req.SKU)
	if newSKU != product.SKU {
		exists, err := s.productRepo.ExistsBySKU(ctx, newSKU)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
		}
	}

	if err := product.Update(req.Name, req.SKU); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, audit.ActionUpdateProduct, product.ID, "updated product "+product.SKU)

	return ToProductResponse(product), nil
}

// Get returns a product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List returns a page of products
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = *ToProductResponse(&products[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes a product together with its variations. Deletion is
// refused while a return item references the product.
func (s *ProductService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	referenced, err := s.returnRepo.HasItemsForProduct(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return shared.NewDomainError("CONFLICT", "Product is referenced by existing returns")
	}

	if err := s.variationRepo.DeleteByProduct(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recordAudit(ctx, actor, audit.ActionDeleteProduct, id, "deleted product "+product.SKU)
	return nil
}

// AttachAttribute appends an attribute to the product's ordering. Products
// with existing variations cannot change their attribute set: every stored
// variation would become an incomplete assignment.
func (s *ProductService) AttachAttribute(ctx context.Context, actor identity.Actor, productID uuid.UUID, req AttachAttributeRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	attr, err := s.attributeRepo.FindByID(ctx, req.AttributeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_ATTRIBUTE", "Attribute not found")
		}
		return nil, err
	}

	if err := s.ensureNoVariations(ctx, productID); err != nil {
		return nil, err
	}

	if err := product.AttachAttribute(attr); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, audit.ActionUpdateProduct, product.ID, fmt.Sprintf("attached attribute %s to product %s", attr.Name, product.SKU))

	return ToProductResponse(product), nil
}

// DetachAttribute removes an attribute from the product's ordering
func (s *ProductService) DetachAttribute(ctx context.Context, actor identity.Actor, productID, attributeID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNoVariations(ctx, productID); err != nil {
		return nil, err
	}

	if err := product.DetachAttribute(attributeID); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, audit.ActionUpdateProduct, product.ID, "detached attribute from product "+product.SKU)

	return ToProductResponse(product), nil
}

func (s *ProductService) ensureNoVariations(ctx context.Context, productID uuid.UUID) error {
	variations, err := s.variationRepo.FindByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if len(variations) > 0 {
		return shared.NewDomainError("CONFLICT", "Cannot change attributes of a product with existing variations")
	}
	return nil
}

func (s *ProductService) recordAudit(ctx context.Context, actor identity.Actor, action audit.Action, targetID uuid.UUID, detail string) {
	entry := audit.NewEntry(action, "Product", targetID, actor.ID, actor.Email, actor.Name, detail)
	if err := s.auditLog.Record(ctx, entry); err != nil {
		s.logger.Error("Failed to record audit entry",
			zap.String("action", string(action)),
			zap.String("target_id", targetID.String()),
			zap.Error(err))
	}
}
