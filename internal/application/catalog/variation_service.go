package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/returnhub/backend/internal/domain/audit"
	"github.com/returnhub/backend/internal/domain/catalog"
	"github.com/returnhub/backend/internal/domain/identity"
	"github.com/returnhub/backend/internal/domain/shared"
)

// VariationService handles product variation administration and the
// customer-facing cascading option queries.
type VariationService struct {
	productRepo   catalog.ProductRepository
	attributeRepo catalog.VariationAttributeRepository
	variationRepo catalog.ProductVariationRepository
	auditLog      audit.Logger
	logger        *zap.Logger
}

// NewVariationService creates a new VariationService
func NewVariationService(
	productRepo catalog.ProductRepository,
	attributeRepo catalog.VariationAttributeRepository,
	variationRepo catalog.ProductVariationRepository,
	auditLog audit.Logger,
	logger *zap.Logger,
) *VariationService {
	return &VariationService{
		productRepo:   productRepo,
		attributeRepo: attributeRepo,
		variationRepo: variationRepo,
		auditLog:      auditLog,
		logger:        logger,
	}
}

// Create creates a new variation for a product
func (s *VariationService) Create(ctx context.Context, actor identity.Actor, productID uuid.UUID, req CreateVariationRequest) (*VariationResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	exists, err := s.variationRepo.ExistsBySKU(ctx, strings.ToUpper(req.SKU))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Variation with this SKU already exists")
	}

	if err := s.validateOptionValues(ctx, product, req.Values); err != nil {
		return nil, err
	}

	variation, err := catalog.NewProductVariation(product, req.SKU, req.Values)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUniqueAssignment(ctx, product, variation, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.variationRepo.Save(ctx, variation); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, audit.ActionCreateVariation, variation.ID, "created variation "+variation.SKU)

	return ToVariationResponse(variation), nil
}

// Update replaces a variation's attribute assignment
func (s *VariationService) Update(ctx context.Context, actor identity.Actor, variationID uuid.UUID, req UpdateVariationRequest) (*VariationResponse, error) {
	variation, err := s.variationRepo.FindByID(ctx, variationID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(ctx, variation.ProductID)
	if err != nil {
		return nil, err
	}

	if err := s.validateOptionValues(ctx, product, req.Values); err != nil {
		return nil, err
	}
	if err := variation.UpdateValues(product, req.Values); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueAssignment(ctx, product, variation, variation.ID); err != nil {
		return nil, err
	}
	if err := s.variationRepo.Save(ctx, variation); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, audit.ActionUpdateVariation, variation.ID, "updated variation "+variation.SKU)

	return ToVariationResponse(variation), nil
}

// Delete removes a variation
func (s *VariationService) Delete(ctx context.Context, actor identity.Actor, variationID uuid.UUID) error {
	variation, err := s.variationRepo.FindByID(ctx, variationID)
	if err != nil {
		return err
	}
	if err := s.variationRepo.Delete(ctx, variationID); err != nil {
		return err
	}

	s.recordAudit(ctx, actor, audit.ActionDeleteVariation, variationID, "deleted variation "+variation.SKU)
	return nil
}

// ListByProduct returns all variations of a product
func (s *VariationService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]VariationResponse, error) {
	variations, err := s.variationRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	items := make([]VariationResponse, len(variations))
	for i, v := range variations {
		items[i] = *ToVariationResponse(v)
	}
	return items, nil
}

// AvailableOptions computes which values the named attribute can still
// take given the selections fixed before it. Data is re-read on every call
// so catalog edits are never served from a stale snapshot.
func (s *VariationService) AvailableOptions(ctx context.Context, productID uuid.UUID, req AvailableOptionsRequest) (*AvailableOptionsResponse, error) {
	product, variations, err := s.snapshot(ctx, productID)
	if err != nil {
		return nil, err
	}

	options := catalog.AvailableOptions(product, variations, req.Attribute, catalog.Selection(req.Selection))
	return &AvailableOptionsResponse{Attribute: req.Attribute, Options: options}, nil
}

// Resolve maps a complete selection to its variation. For products without
// attributes the product's own SKU is returned with no variation.
func (s *VariationService) Resolve(ctx context.Context, productID uuid.UUID, req ResolveRequest) (*ResolveResponse, error) {
	product, variations, err := s.snapshot(ctx, productID)
	if err != nil {
		return nil, err
	}

	variation, err := catalog.Resolve(product, variations, catalog.Selection(req.Selection))
	if err != nil {
		return nil, err
	}
	if variation == nil {
		return &ResolveResponse{SKU: product.SKU}, nil
	}
	return &ResolveResponse{SKU: variation.SKU, Variation: ToVariationResponse(variation)}, nil
}

func (s *VariationService) snapshot(ctx context.Context, productID uuid.UUID) (*catalog.Product, []catalog.ProductVariation, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	stored, err := s.variationRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	variations := make([]catalog.ProductVariation, len(stored))
	for i := range stored {
		variations[i] = *stored[i]
	}
	return product, variations, nil
}

// validateOptionValues checks every assigned value against the attribute's
// allowed option list.
func (s *VariationService) validateOptionValues(ctx context.Context, product *catalog.Product, values map[string]string) error {
	for _, attr := range product.Attributes {
		value, ok := values[attr.Name]
		if !ok {
			continue // completeness is validated by the domain constructor
		}
		stored, err := s.attributeRepo.FindByID(ctx, attr.AttributeID)
		if err != nil {
			return err
		}
		if !stored.HasOption(value) {
			return shared.NewDomainError("INVALID_OPTION", "Value "+value+" is not an allowed option for "+attr.Name)
		}
	}
	return nil
}

// ensureUniqueAssignment enforces that no two variations of a product
// share the same complete attribute assignment.
func (s *VariationService) ensureUniqueAssignment(ctx context.Context, product *catalog.Product, variation *catalog.ProductVariation, selfID uuid.UUID) error {
	existing, err := s.variationRepo.FindByProduct(ctx, product.ID)
	if err != nil {
		return err
	}
	key := variation.AssignmentKey(product)
	for _, other := range existing {
		if other.ID == selfID {
			continue
		}
		if other.AssignmentKey(product) == key {
			return shared.NewDomainError("ALREADY_EXISTS", "A variation with this attribute combination already exists")
		}
	}
	return nil
}

func (s *VariationService) recordAudit(ctx context.Context, actor identity.Actor, action audit.Action, targetID uuid.UUID, detail string) {
	entry := audit.NewEntry(action, "ProductVariation", targetID, actor.ID, actor.Email, actor.Name, detail)
	if err := s.auditLog.Record(ctx, entry); err != nil {
		s.logger.Error("Failed to record audit entry",
			zap.String("action", string(action)),
			zap.String("target_id", targetID.String()),
			zap.Error(err))
	}
}
