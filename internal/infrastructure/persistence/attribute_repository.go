package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/returnhub/backend/internal/domain/catalog"
	"github.com/returnhub/backend/internal/domain/shared"
	"github.com/returnhub/backend/internal/infrastructure/persistence/models"
)

// AttributeSortFields contains allowed sort fields for variation attributes
var AttributeSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// GormVariationAttributeRepository implements catalog.VariationAttributeRepository using GORM
type GormVariationAttributeRepository struct {
	db *gorm.DB
}

// NewGormVariationAttributeRepository creates a new GormVariationAttributeRepository
func NewGormVariationAttributeRepository(db *gorm.DB) *GormVariationAttributeRepository {
	return &GormVariationAttributeRepository{db: db}
}

// FindByID finds an attribute by its ID with its options
func (r *GormVariationAttributeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.VariationAttribute, error) {
	var model models.VariationAttributeModel
	if err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds attributes matching the filter
func (r *GormVariationAttributeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.VariationAttribute, error) {
	var rows []models.VariationAttributeModel
	query := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") })
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	query = applyListFilter(query, filter, AttributeSortFields)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	attrs := make([]catalog.VariationAttribute, len(rows))
	for i := range rows {
		attrs[i] = *rows[i].ToDomain()
	}
	return attrs, nil
}

// Save creates or updates an attribute together with its option set
func (r *GormVariationAttributeRepository) Save(ctx context.Context, attr *catalog.VariationAttribute) error {
	var model models.VariationAttributeModel
	model.FromDomain(attr)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Options").Save(&model).Error; err != nil {
			return err
		}

		kept := make([]uuid.UUID, len(model.Options))
		for i, o := range model.Options {
			kept[i] = o.ID
		}
		removal := tx.Where("attribute_id = ?", model.ID)
		if len(kept) > 0 {
			removal = removal.Where("id NOT IN ?", kept)
		}
		if err := removal.Delete(&models.AttributeOptionModel{}).Error; err != nil {
			return err
		}

		for i := range model.Options {
			if err := tx.Save(&model.Options[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an attribute and its options
func (r *GormVariationAttributeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attribute_id = ?", id).
			Delete(&models.AttributeOptionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.VariationAttributeModel{}, "id = ?", id).Error
	})
}

// Count counts attributes matching the filter
func (r *GormVariationAttributeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.VariationAttributeModel{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByName finds an attribute by its exact name
func (r *GormVariationAttributeRepository) FindByName(ctx context.Context, name string) (*catalog.VariationAttribute, error) {
	var model models.VariationAttributeModel
	if err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// InUse reports whether any product currently references the attribute
func (r *GormVariationAttributeRepository) InUse(ctx context.Context, attributeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductAttributeModel{}).
		Where("attribute_id = ?", attributeID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
