package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/returnhub/backend/internal/domain/returns"
	"github.com/returnhub/backend/internal/domain/shared"
	"github.com/returnhub/backend/internal/infrastructure/persistence/models"
)

// GormReturnRepository implements returns.Repository using GORM
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GormReturnRepository
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// NextNumber allocates the next return number from the database sequence.
// The sequence is the single source of numbers: concurrent callers always
// receive distinct values and gaps are tolerated.
func (r *GormReturnRepository) NextNumber(ctx context.Context) (int64, error) {
	var number int64
	if err := r.db.WithContext(ctx).
		Raw("SELECT nextval('return_number_seq')").
		Scan(&number).Error; err != nil {
		return 0, err
	}
	return number, nil
}

// Create persists the return with its items, history and images in one
// transaction
func (r *GormReturnRepository) Create(ctx context.Context, ret *returns.Return) error {
	var model models.ReturnModel
	model.FromDomain(ret)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&model).Error
	})
}

// FindByID loads a return with all its children
func (r *GormReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*returns.Return, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByNumber loads a return by its allocated number
func (r *GormReturnRepository) FindByNumber(ctx context.Context, number int64) (*returns.Return, error) {
	return r.findOne(ctx, "number = ?", number)
}

func (r *GormReturnRepository) findOne(ctx context.Context, cond string, arg interface{}) (*returns.Return, error) {
	var model models.ReturnModel
	if err := r.preloadChildren(r.db.WithContext(ctx)).
		First(&model, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormReturnRepository) preloadChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Notes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") })
}

// FindAll loads one page of returns matching the filter plus the total count
func (r *GormReturnRepository) FindAll(ctx context.Context, filter returns.Filter) ([]*returns.Return, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.ReturnModel{})
	base = applyReturnFilter(base, filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.preloadChildren(r.db.WithContext(ctx))
	query = applyReturnFilter(query, filter).Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var rows []models.ReturnModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	result := make([]*returns.Return, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result, total, nil
}

func applyReturnFilter(query *gorm.DB, filter returns.Filter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.CustomerEmail != "" {
		query = query.Where("customer_email = ?", filter.CustomerEmail)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}
	return query
}

// CountByStatus counts returns per status
func (r *GormReturnRepository) CountByStatus(ctx context.Context) (map[returns.Status]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	if err := r.db.WithContext(ctx).Model(&models.ReturnModel{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[returns.Status]int64, len(rows))
	for _, row := range rows {
		counts[returns.Status(row.Status)] = row.Total
	}
	return counts, nil
}

// RecordTransition updates the status field and appends the history entry
// in one transaction. The history insert and the status update commit or
// fail together so a concurrent transition can never drop an entry.
func (r *GormReturnRepository) RecordTransition(ctx context.Context, returnID uuid.UUID, status returns.Status, entry returns.StatusHistoryEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ReturnModel{}).
			Where("id = ?", returnID).
			Updates(map[string]interface{}{
				"status":     status.String(),
				"updated_at": time.Now(),
				"version":    gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		row := models.NewReturnStatusHistoryModel(returnID, entry)
		return tx.Create(&row).Error
	})
}

// AddNote appends an internal note row
func (r *GormReturnRepository) AddNote(ctx context.Context, note returns.InternalNote) error {
	row := models.NewReturnNoteModel(note.ReturnID, note)
	return r.db.WithContext(ctx).Create(&row).Error
}

// Delete removes a return and all its children
func (r *GormReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&models.ReturnItemModel{},
			&models.ReturnStatusHistoryModel{},
			&models.ReturnNoteModel{},
			&models.ReturnImageModel{},
		} {
			if err := tx.Where("return_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.ReturnModel{}, "id = ?", id).Error
	})
}

// HasItemsForProduct reports whether any return item references the product
func (r *GormReturnRepository) HasItemsForProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ReturnItemModel{}).
		Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
