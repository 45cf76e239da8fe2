package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/returnhub/backend/internal/domain/audit"
	"github.com/returnhub/backend/internal/infrastructure/persistence/models"
)

// GormAuditLogRepository implements audit.Logger using GORM. Rows are
// append-only; there is no update or delete path.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Record appends one audit entry
func (r *GormAuditLogRepository) Record(ctx context.Context, entry audit.Entry) error {
	var model models.AuditLogModel
	model.FromDomain(entry)
	return r.db.WithContext(ctx).Create(&model).Error
}

// List returns one page of audit entries, newest first, plus the total count
func (r *GormAuditLogRepository) List(ctx context.Context, page, pageSize int) ([]audit.Entry, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.AuditLogModel{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.AuditLogModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]audit.Entry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, total, nil
}
