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

// VariationSortFields contains allowed sort fields for product variations
var VariationSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"sku":        true,
	"product_id": true,
}

// GormProductVariationRepository implements catalog.ProductVariationRepository using GORM
type GormProductVariationRepository struct {
	db *gorm.DB
}

// NewGormProductVariationRepository creates a new GormProductVariationRepository
func NewGormProductVariationRepository(db *gorm.DB) *GormProductVariationRepository {
	return &GormProductVariationRepository{db: db}
}

// FindByID finds a variation by its ID
func (r *GormProductVariationRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductVariation, error) {
	var model models.ProductVariationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds variations matching the filter
func (r *GormProductVariationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ProductVariation, error) {
	var rows []models.ProductVariationModel
	query := applyListFilter(r.db.WithContext(ctx), filter, VariationSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	variations := make([]catalog.ProductVariation, len(rows))
	for i := range rows {
		variations[i] = *rows[i].ToDomain()
	}
	return variations, nil
}

// Save creates or updates a variation
func (r *GormProductVariationRepository) Save(ctx context.Context, v *catalog.ProductVariation) error {
	var model models.ProductVariationModel
	model.FromDomain(v)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a variation
func (r *GormProductVariationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ProductVariationModel{}, "id = ?", id).Error
}

// Count counts variations matching the filter
func (r *GormProductVariationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductVariationModel{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByProduct finds all variations of a product, oldest first so the
// resolver sees a stable order
func (r *GormProductVariationRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*catalog.ProductVariation, error) {
	var rows []models.ProductVariationModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	variations := make([]*catalog.ProductVariation, len(rows))
	for i := range rows {
		variations[i] = rows[i].ToDomain()
	}
	return variations, nil
}

// FindBySKU finds a variation by its SKU
func (r *GormProductVariationRepository) FindBySKU(ctx context.Context, sku string) (*catalog.ProductVariation, error) {
	var model models.ProductVariationModel
	if err := r.db.WithContext(ctx).First(&model, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsBySKU reports whether any variation carries the SKU
func (r *GormProductVariationRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductVariationModel{}).
		Where("sku = ?", sku).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByProduct removes every variation of a product
func (r *GormProductVariationRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.ProductVariationModel{}).Error
}

// ValueInUse reports whether any variation assigns the value to the named
// attribute. The assignment column is scanned in Go rather than queried
// with a JSON operator so the check behaves the same on every driver.
func (r *GormProductVariationRepository) ValueInUse(ctx context.Context, attributeName, value string) (bool, error) {
	var rows []models.ProductVariationModel
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return false, err
	}
	for i := range rows {
		if rows[i].Values[attributeName] == value {
			return true, nil
		}
	}
	return false, nil
}
