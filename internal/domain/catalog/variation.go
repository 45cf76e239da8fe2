package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/returnhub/backend/internal/domain/shared"
)

// ProductVariation is one concrete, orderable combination of attribute values
// for a product. The assignment is total: it carries a value for every
// attribute the product exposes, no more and no less.
type ProductVariation struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID
	SKU       string
	Values    map[string]string
}

// NewProductVariation creates a new variation for the given product.
// The values map must assign a non-empty value to every attribute the
// product currently exposes.
func NewProductVariation(product *Product, sku string, values map[string]string) (*ProductVariation, error) {
	if product == nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product cannot be nil")
	}
	if !product.HasVariations() {
		return nil, shared.NewDomainError("NO_ATTRIBUTES", "Product has no attributes linked, cannot create variations")
	}
	if err := ValidateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateAssignment(product, values); err != nil {
		return nil, err
	}

	v := &ProductVariation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         product.ID,
		SKU:               strings.ToUpper(sku),
		Values:            copyValues(values),
	}

	v.AddDomainEvent(NewProductVariationCreatedEvent(v))

	return v, nil
}

// UpdateValues replaces the variation's attribute assignment.
// Completeness is re-validated against the product's current attribute set.
func (v *ProductVariation) UpdateValues(product *Product, values map[string]string) error {
	if product == nil || product.ID != v.ProductID {
		return shared.NewDomainError("INVALID_PRODUCT", "Variation does not belong to product")
	}
	if err := validateAssignment(product, values); err != nil {
		return err
	}

	v.Values = copyValues(values)
	v.Touch()
	v.IncrementVersion()

	v.AddDomainEvent(NewProductVariationUpdatedEvent(v))

	return nil
}

// Matches reports whether the variation is consistent with the given partial
// selection: every selected attribute must carry the same value here.
func (v *ProductVariation) Matches(selection map[string]string) bool {
	for name, value := range selection {
		if v.Values[name] != value {
			return false
		}
	}
	return true
}

// AssignmentKey builds a canonical string for the (product, assignment)
// uniqueness invariant: values joined in the product's attribute order.
func (v *ProductVariation) AssignmentKey(product *Product) string {
	parts := make([]string, 0, len(product.Attributes))
	for _, attr := range product.Attributes {
		parts = append(parts, attr.Name+"="+v.Values[attr.Name])
	}
	return strings.Join(parts, "|")
}

func validateAssignment(product *Product, values map[string]string) error {
	for _, attr := range product.Attributes {
		value, ok := values[attr.Name]
		if !ok || strings.TrimSpace(value) == "" {
			return shared.NewDomainError("INCOMPLETE_ASSIGNMENT", "Missing value for attribute: "+attr.Name)
		}
	}
	for name := range values {
		if product.AttributePosition(name) < 0 {
			return shared.NewDomainError("UNKNOWN_ATTRIBUTE", "Product does not expose attribute: "+name)
		}
	}
	return nil
}

func copyValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for name, value := range values {
		out[name] = strings.TrimSpace(value)
	}
	return out
}
