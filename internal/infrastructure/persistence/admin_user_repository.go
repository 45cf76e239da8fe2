package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/returnhub/backend/internal/domain/identity"
	"github.com/returnhub/backend/internal/domain/shared"
	"github.com/returnhub/backend/internal/infrastructure/persistence/models"
)

// AdminUserSortFields contains allowed sort fields for admin users
var AdminUserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"name":          true,
	"last_login_at": true,
}

// GormAdminUserRepository implements identity.Repository using GORM
type GormAdminUserRepository struct {
	db *gorm.DB
}

// NewGormAdminUserRepository creates a new GormAdminUserRepository
func NewGormAdminUserRepository(db *gorm.DB) *GormAdminUserRepository {
	return &GormAdminUserRepository{db: db}
}

// FindByID finds an admin user by ID
func (r *GormAdminUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.AdminUser, error) {
	var model models.AdminUserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds admin users matching the filter
func (r *GormAdminUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.AdminUser, error) {
	var rows []models.AdminUserModel
	query := applyListFilter(r.db.WithContext(ctx), filter, AdminUserSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	users := make([]identity.AdminUser, len(rows))
	for i := range rows {
		users[i] = *rows[i].ToDomain()
	}
	return users, nil
}

// Save creates or updates an admin user
func (r *GormAdminUserRepository) Save(ctx context.Context, user *identity.AdminUser) error {
	var model models.AdminUserModel
	model.FromDomain(user)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes an admin user
func (r *GormAdminUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.AdminUserModel{}, "id = ?", id).Error
}

// Count counts admin users
func (r *GormAdminUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AdminUserModel{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByEmail finds an admin user by email, case-insensitively
func (r *GormAdminUserRepository) FindByEmail(ctx context.Context, email string) (*identity.AdminUser, error) {
	var model models.AdminUserModel
	if err := r.db.WithContext(ctx).
		First(&model, "email = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByEmail reports whether an admin account exists for the email
func (r *GormAdminUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AdminUserModel{}).
		Where("email = ?", strings.ToLower(email)).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
