package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/returnhub/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product aggregate.
type ProductModel struct {
	AggregateModel
	Name       string                  `gorm:"type:varchar(200);not null"`
	SKU        string                  `gorm:"type:varchar(50);not null;uniqueIndex"`
	Attributes []ProductAttributeModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ProductAttributeModel is one attribute reference on a product, ordered
// by position.
type ProductAttributeModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AttributeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Position    int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductAttributeModel) TableName() string {
	return "product_attributes"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	attrs := make([]catalog.ProductAttribute, len(m.Attributes))
	for i, a := range m.Attributes {
		attrs[i] = catalog.ProductAttribute{
			AttributeID: a.AttributeID,
			Name:        a.Name,
			Position:    a.Position,
		}
	}
	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		SKU:               m.SKU,
		Attributes:        attrs,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.SKU = p.SKU
	m.Attributes = make([]ProductAttributeModel, len(p.Attributes))
	for i, a := range p.Attributes {
		m.Attributes[i] = ProductAttributeModel{
			ID:          uuid.New(),
			ProductID:   p.ID,
			AttributeID: a.AttributeID,
			Name:        a.Name,
			Position:    a.Position,
		}
	}
}

// VariationAttributeModel is the persistence model for the
// VariationAttribute aggregate.
type VariationAttributeModel struct {
	AggregateModel
	Name    string                 `gorm:"type:varchar(100);not null;uniqueIndex"`
	Options []AttributeOptionModel `gorm:"foreignKey:AttributeID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (VariationAttributeModel) TableName() string {
	return "variation_attributes"
}

// AttributeOptionModel is one allowed value of a variation attribute.
type AttributeOptionModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	AttributeID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_option_attribute_value,priority:1"`
	Value       string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_option_attribute_value,priority:2"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AttributeOptionModel) TableName() string {
	return "variation_options"
}

// ToDomain converts the persistence model to a domain VariationAttribute.
func (m *VariationAttributeModel) ToDomain() *catalog.VariationAttribute {
	options := make([]catalog.AttributeOption, len(m.Options))
	for i, o := range m.Options {
		options[i] = catalog.AttributeOption{
			ID:          o.ID,
			AttributeID: o.AttributeID,
			Value:       o.Value,
			CreatedAt:   o.CreatedAt,
		}
	}
	return &catalog.VariationAttribute{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Options:           options,
	}
}

// FromDomain populates the persistence model from a domain VariationAttribute.
func (m *VariationAttributeModel) FromDomain(a *catalog.VariationAttribute) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Name = a.Name
	m.Options = make([]AttributeOptionModel, len(a.Options))
	for i, o := range a.Options {
		m.Options[i] = AttributeOptionModel{
			ID:          o.ID,
			AttributeID: o.AttributeID,
			Value:       o.Value,
			CreatedAt:   o.CreatedAt,
		}
	}
}

// ProductVariationModel is the persistence model for the ProductVariation
// aggregate. Values is the total attribute assignment serialized as JSON.
type ProductVariationModel struct {
	AggregateModel
	ProductID uuid.UUID         `gorm:"type:uuid;not null;index"`
	SKU       string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	Values    map[string]string `gorm:"serializer:json;type:jsonb;not null"`
}

// TableName returns the table name for GORM
func (ProductVariationModel) TableName() string {
	return "product_variations"
}

// ToDomain converts the persistence model to a domain ProductVariation.
func (m *ProductVariationModel) ToDomain() *catalog.ProductVariation {
	values := make(map[string]string, len(m.Values))
	for k, v := range m.Values {
		values[k] = v
	}
	return &catalog.ProductVariation{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ProductID:         m.ProductID,
		SKU:               m.SKU,
		Values:            values,
	}
}

// FromDomain populates the persistence model from a domain ProductVariation.
func (m *ProductVariationModel) FromDomain(v *catalog.ProductVariation) {
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	m.ProductID = v.ProductID
	m.SKU = v.SKU
	m.Values = make(map[string]string, len(v.Values))
	for k, val := range v.Values {
		m.Values[k] = val
	}
}
