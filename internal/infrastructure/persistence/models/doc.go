// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
// - base.go: Base persistence models (BaseModel, AggregateModel)
// - catalog.go: Catalog context models (Product, VariationAttribute, ProductVariation)
// - returns.go: Return context models (Return and its items, history, notes, images)
// - identity.go: Admin account model
// - audit.go: Append-only audit log model
package models
