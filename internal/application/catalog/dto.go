package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/returnhub/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
	SKU  string `json:"sku" binding:"required,min=1,max=50"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
	SKU  string `json:"sku" binding:"required,min=1,max=50"`
}

// AttachAttributeRequest links an existing attribute to a product
type AttachAttributeRequest struct {
	AttributeID uuid.UUID `json:"attribute_id" binding:"required"`
}

// ProductAttributeResponse is one attribute reference on a product
type ProductAttributeResponse struct {
	AttributeID uuid.UUID `json:"attribute_id"`
	Name        string    `json:"name"`
	Position    int       `json:"position"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID         uuid.UUID                  `json:"id"`
	Name       string                     `json:"name"`
	SKU        string                     `json:"sku"`
	Attributes []ProductAttributeResponse `json:"attributes"`
	CreatedAt  time.Time                  `json:"created_at"`
	UpdatedAt  time.Time                  `json:"updated_at"`
	Version    int                        `json:"version"`
}

// ToProductResponse converts a domain product to its response form
func ToProductResponse(p *catalog.Product) *ProductResponse {
	attrs := make([]ProductAttributeResponse, len(p.Attributes))
	for i, attr := range p.Attributes {
		attrs[i] = ProductAttributeResponse{
			AttributeID: attr.AttributeID,
			Name:        attr.Name,
			Position:    attr.Position,
		}
	}
	return &ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		SKU:        p.SKU,
		Attributes: attrs,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Version:    p.Version,
	}
}

// CreateAttributeRequest represents a request to create a variation attribute
type CreateAttributeRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// AddOptionRequest adds an allowed value to an attribute
type AddOptionRequest struct {
	Value string `json:"value" binding:"required,min=1,max=100"`
}

// OptionResponse is one allowed value of an attribute
type OptionResponse struct {
	ID        uuid.UUID `json:"id"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// AttributeResponse represents a variation attribute in API responses
type AttributeResponse struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Options   []OptionResponse `json:"options"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ToAttributeResponse converts a domain attribute to its response form
func ToAttributeResponse(a *catalog.VariationAttribute) *AttributeResponse {
	options := make([]OptionResponse, len(a.Options))
	for i, opt := range a.Options {
		options[i] = OptionResponse{
			ID:        opt.ID,
			Value:     opt.Value,
			CreatedAt: opt.CreatedAt,
		}
	}
	return &AttributeResponse{
		ID:        a.ID,
		Name:      a.Name,
		Options:   options,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// CreateVariationRequest represents a request to create a product variation
type CreateVariationRequest struct {
	SKU    string            `json:"sku" binding:"required,min=1,max=50"`
	Values map[string]string `json:"values" binding:"required"`
}

// UpdateVariationRequest replaces a variation's attribute assignment
type UpdateVariationRequest struct {
	Values map[string]string `json:"values" binding:"required"`
}

// VariationResponse represents a product variation in API responses
type VariationResponse struct {
	ID        uuid.UUID         `json:"id"`
	ProductID uuid.UUID         `json:"product_id"`
	SKU       string            `json:"sku"`
	Values    map[string]string `json:"values"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ToVariationResponse converts a domain variation to its response form
func ToVariationResponse(v *catalog.ProductVariation) *VariationResponse {
	return &VariationResponse{
		ID:        v.ID,
		ProductID: v.ProductID,
		SKU:       v.SKU,
		Values:    v.Values,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// AvailableOptionsRequest asks which values an attribute can still take
type AvailableOptionsRequest struct {
	Attribute string            `json:"attribute" binding:"required"`
	Selection map[string]string `json:"selection"`
}

// AvailableOptionsResponse lists the legal values for the attribute
type AvailableOptionsResponse struct {
	Attribute string   `json:"attribute"`
	Options   []string `json:"options"`
}

// ResolveRequest asks for the variation matching a complete selection
type ResolveRequest struct {
	Selection map[string]string `json:"selection" binding:"required"`
}

// ResolveResponse carries the resolved variation. For products without
// attributes Variation is nil and the product's own SKU applies.
type ResolveResponse struct {
	SKU       string             `json:"sku"`
	Variation *VariationResponse `json:"variation,omitempty"`
}
