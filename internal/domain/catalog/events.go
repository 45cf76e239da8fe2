package catalog

import (
	"github.com/google/uuid"
	"github.com/returnhub/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeProduct            = "Product"
	AggregateTypeVariationAttribute = "VariationAttribute"
	AggregateTypeProductVariation   = "ProductVariation"
)

// Event type constants
const (
	EventTypeProductCreated            = "ProductCreated"
	EventTypeProductUpdated            = "ProductUpdated"
	EventTypeProductDeleted            = "ProductDeleted"
	EventTypeVariationAttributeCreated = "VariationAttributeCreated"
	EventTypeProductVariationCreated   = "ProductVariationCreated"
	EventTypeProductVariationUpdated   = "ProductVariationUpdated"
	EventTypeProductVariationDeleted   = "ProductVariationDeleted"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		SKU:             product.SKU,
	}
}

// ProductUpdatedEvent is published when a product is updated
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		SKU:             product.SKU,
	}
}

// ProductDeletedEvent is published when a product is deleted
type ProductDeletedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
}

// NewProductDeletedEvent creates a new ProductDeletedEvent
func NewProductDeletedEvent(product *Product) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeleted, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
	}
}

// VariationAttributeCreatedEvent is published when an attribute is created
type VariationAttributeCreatedEvent struct {
	shared.BaseDomainEvent
	AttributeID uuid.UUID `json:"attribute_id"`
	Name        string    `json:"name"`
}

// NewVariationAttributeCreatedEvent creates a new VariationAttributeCreatedEvent
func NewVariationAttributeCreatedEvent(attr *VariationAttribute) *VariationAttributeCreatedEvent {
	return &VariationAttributeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVariationAttributeCreated, AggregateTypeVariationAttribute, attr.ID),
		AttributeID:     attr.ID,
		Name:            attr.Name,
	}
}

// ProductVariationCreatedEvent is published when a variation is created
type ProductVariationCreatedEvent struct {
	shared.BaseDomainEvent
	VariationID uuid.UUID         `json:"variation_id"`
	ProductID   uuid.UUID         `json:"product_id"`
	SKU         string            `json:"sku"`
	Values      map[string]string `json:"values"`
}

// NewProductVariationCreatedEvent creates a new ProductVariationCreatedEvent
func NewProductVariationCreatedEvent(v *ProductVariation) *ProductVariationCreatedEvent {
	return &ProductVariationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductVariationCreated, AggregateTypeProductVariation, v.ID),
		VariationID:     v.ID,
		ProductID:       v.ProductID,
		SKU:             v.SKU,
		Values:          v.Values,
	}
}

// ProductVariationUpdatedEvent is published when a variation's assignment changes
type ProductVariationUpdatedEvent struct {
	shared.BaseDomainEvent
	VariationID uuid.UUID         `json:"variation_id"`
	ProductID   uuid.UUID         `json:"product_id"`
	Values      map[string]string `json:"values"`
}

// NewProductVariationUpdatedEvent creates a new ProductVariationUpdatedEvent
func NewProductVariationUpdatedEvent(v *ProductVariation) *ProductVariationUpdatedEvent {
	return &ProductVariationUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductVariationUpdated, AggregateTypeProductVariation, v.ID),
		VariationID:     v.ID,
		ProductID:       v.ProductID,
		Values:          v.Values,
	}
}

// ProductVariationDeletedEvent is published when a variation is deleted
type ProductVariationDeletedEvent struct {
	shared.BaseDomainEvent
	VariationID uuid.UUID `json:"variation_id"`
	ProductID   uuid.UUID `json:"product_id"`
}

// NewProductVariationDeletedEvent creates a new ProductVariationDeletedEvent
func NewProductVariationDeletedEvent(v *ProductVariation) *ProductVariationDeletedEvent {
	return &ProductVariationDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductVariationDeleted, AggregateTypeProductVariation, v.ID),
		VariationID:     v.ID,
		ProductID:       v.ProductID,
	}
}
