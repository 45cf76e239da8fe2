package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/returnhub/backend/internal/domain/audit"
	"github.com/returnhub/backend/internal/domain/catalog"
	"github.com/returnhub/backend/internal/domain/identity"
	"github.com/returnhub/backend/internal/domain/shared"
)

// AttributeService handles variation attribute administration
type AttributeService struct {
	attributeRepo catalog.VariationAttributeRepository
	variationRepo catalog.ProductVariationRepository
	auditLog      audit.Logger
	logger        *zap.Logger
}

// NewAttributeService creates a new AttributeService
func NewAttributeService(
	attributeRepo catalog.VariationAttributeRepository,
	variationRepo catalog.ProductVariationRepository,
	auditLog audit.Logger,
	logger *zap.Logger,
) *AttributeService {
	return &AttributeService{
		attributeRepo: attributeRepo,
		variationRepo: variationRepo,
		auditLog:      auditLog,
		logger:        logger,
	}
}

// Create creates a new variation attribute
func (s *AttributeService) Create(ctx context.Context, actor identity.Actor, req CreateAttributeRequest) (*AttributeResponse, error) {
	if _, err := s.attributeRepo.FindByName(ctx, req.Name); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Attribute with this name already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	attr, err := catalog.NewVariationAttribute(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.attributeRepo.Save(ctx, attr); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, audit.ActionCreateAttribute, attr.ID, "created attribute "+attr.Name)

	return ToAttributeResponse(attr), nil
}

// Get returns an attribute by ID
func (s *AttributeService) Get(ctx context.Context, id uuid.UUID) (*AttributeResponse, error) {
	attr, err := s.attributeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToAttributeResponse(attr), nil
}

// List returns a page of attributes
func (s *AttributeService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[AttributeResponse], error) {
	attrs, err := s.attributeRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.attributeRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]AttributeResponse, len(attrs))
	for i := range attrs {
		items[i] = *ToAttributeResponse(&attrs[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// AddOption adds an allowed value to an attribute
func (s *AttributeService) AddOption(ctx context.Context, actor identity.Actor, attributeID uuid.UUID, req AddOptionRequest) (*AttributeResponse, error) {
	attr, err := s.attributeRepo.FindByID(ctx, attributeID)
	if err != nil {
		return nil, err
	}

	if _, err := attr.AddOption(req.Value); err != nil {
		return nil, err
	}
	if err := s.attributeRepo.Save(ctx, attr); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, audit.ActionUpdateAttribute, attr.ID, "added option "+req.Value+" to "+attr.Name)

	return ToAttributeResponse(attr), nil
}

// RemoveOption removes an option value. Removal is refused while any
// variation still carries the value for this attribute.
func (s *AttributeService) RemoveOption(ctx context.Context, actor identity.Actor, attributeID, optionID uuid.UUID) (*AttributeResponse, error) {
	attr, err := s.attributeRepo.FindByID(ctx, attributeID)
	if err != nil {
		return nil, err
	}
	option := attr.GetOption(optionID)
	if option == nil {
		return nil, shared.ErrNotFound
	}

	inUse, err := s.variationRepo.ValueInUse(ctx, attr.Name, option.Value)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, shared.NewDomainError("CONFLICT", "Option is in use by existing variations")
	}

	if err := attr.RemoveOption(optionID); err != nil {
		return nil, err
	}
	if err := s.attributeRepo.Save(ctx, attr); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor, audit.ActionUpdateAttribute, attr.ID, "removed option "+option.Value+" from "+attr.Name)

	return ToAttributeResponse(attr), nil
}

// Delete removes an attribute. Deletion is refused while any product
// references the attribute.
func (s *AttributeService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	attr, err := s.attributeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	inUse, err := s.attributeRepo.InUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return shared.NewDomainError("CONFLICT", "Attribute is attached to existing products")
	}

	if err := s.attributeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recordAudit(ctx, actor, audit.ActionDeleteAttribute, id, "deleted attribute "+attr.Name)
	return nil
}

func (s *AttributeService) recordAudit(ctx context.Context, actor identity.Actor, action audit.Action, targetID uuid.UUID, detail string) {
	entry := audit.NewEntry(action, "VariationAttribute", targetID, actor.ID, actor.Email, actor.Name, detail)
	if err := s.auditLog.Record(ctx, entry); err != nil {
		s.logger.Error("Failed to record audit entry",
			zap.String("action", string(action)),
			zap.String("target_id", targetID.String()),
			zap.Error(err))
	}
}
