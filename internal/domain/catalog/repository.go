package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/returnhub/backend/internal/domain/shared"
)

// ProductRepository defines the persistence operations for products
type ProductRepository interface {
	shared.Repository[Product]
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
}

// VariationAttributeRepository defines the persistence operations for attributes
type VariationAttributeRepository interface {
	shared.Repository[VariationAttribute]
	FindByName(ctx context.Context, name string) (*VariationAttribute, error)
	// InUse reports whether any product currently references the attribute.
	InUse(ctx context.Context, attributeID uuid.UUID) (bool, error)
}

// ProductVariationRepository defines the persistence operations for variations
type ProductVariationRepository interface {
	shared.Repository[ProductVariation]
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*ProductVariation, error)
	FindBySKU(ctx context.Context, sku string) (*ProductVariation, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
	// ValueInUse reports whether any variation assigns the value to the
	// named attribute, blocking option deletion while referenced.
	ValueInUse(ctx context.Context, attributeName, value string) (bool, error)
}
