package catalog

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/returnhub/backend/internal/domain/shared"
)

var skuPattern = regexp.MustCompile(`^[A-Z0-9-]+$`)

// ProductAttribute is one variation axis a product exposes, in display order.
// Position is zero-based and defines the cascading-select ordering: changing
// the value at a position invalidates every selection after it.
type ProductAttribute struct {
	AttributeID uuid.UUID
	Name        string
	Position    int
}

// Product represents a returnable product in the catalog.
// It is the aggregate root for product-related operations.
type Product struct {
	shared.BaseAggregateRoot
	Name       string
	SKU        string
	Attributes []ProductAttribute
}

// NewProduct creates a new product
func NewProduct(name, sku string) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := ValidateSKU(sku); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SKU:               strings.ToUpper(sku),
		Attributes:        make([]ProductAttribute, 0),
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, sku string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := ValidateSKU(sku); err != nil {
		return err
	}

	p.Name = name
	p.SKU = strings.ToUpper(sku)
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// AttachAttribute appends a variation attribute to the end of the product's
// attribute ordering. The ordering is fixed at attach time and never reshuffled,
// so the resolver sees the same total order on every read.
func (p *Product) AttachAttribute(attr *VariationAttribute) error {
	if attr == nil {
		return shared.NewDomainError("INVALID_ATTRIBUTE", "Attribute cannot be nil")
	}
	for _, existing := range p.Attributes {
		if existing.AttributeID == attr.ID {
			return shared.NewDomainError("DUPLICATE_ATTRIBUTE", "Attribute already attached to product")
		}
	}

	p.Attributes = append(p.Attributes, ProductAttribute{
		AttributeID: attr.ID,
		Name:        attr.Name,
		Position:    len(p.Attributes),
	})
	p.Touch()
	p.IncrementVersion()

	return nil
}

// DetachAttribute removes a variation attribute from the product and closes
// the gap in the ordering.
func (p *Product) DetachAttribute(attributeID uuid.UUID) error {
	for idx, attr := range p.Attributes {
		if attr.AttributeID == attributeID {
			p.Attributes = append(p.Attributes[:idx], p.Attributes[idx+1:]...)
			for i := range p.Attributes {
				p.Attributes[i].Position = i
			}
			p.Touch()
			p.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ATTRIBUTE_NOT_FOUND", "Attribute is not attached to product")
}

// AttributeNames returns the attribute names in position order
func (p *Product) AttributeNames() []string {
	names := make([]string, len(p.Attributes))
	for i, attr := range p.Attributes {
		names[i] = attr.Name
	}
	return names
}

// AttributePosition returns the ordinal position of the named attribute,
// or -1 if the product does not expose it.
func (p *Product) AttributePosition(name string) int {
	for _, attr := range p.Attributes {
		if attr.Name == name {
			return attr.Position
		}
	}
	return -1
}

// HasVariations reports whether the product exposes any variation attributes.
// A product without attributes resolves directly to its own SKU.
func (p *Product) HasVariations() bool {
	return len(p.Attributes) > 0
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

// ValidateSKU validates a product or variation SKU.
// SKUs are uppercase letters, digits and hyphens only.
func ValidateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	if !skuPattern.MatchString(strings.ToUpper(sku)) {
		return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, and hyphens")
	}
	return nil
}
