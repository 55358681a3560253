package repository

import (
	"context"

	"storefront/internal/domain/model"

	"gorm.io/gorm"
)

type AuditLogGormRepository struct {
	db *gorm.DB
}

// DI
func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

func (r *AuditLogGormRepository) Create(ctx context.Context, log model.AuditLog) error {
	return r.db.WithContext(ctx).Create(&log).Error
}

func (r *AuditLogGormRepository) List(ctx context.Context, limit int) ([]model.AuditLog, error) {
	var logs []model.AuditLog

	tx := r.db.WithContext(ctx).Order("created_at desc").Order("id desc")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	if err := tx.Find(&logs).Error; err != nil {
		return []model.AuditLog{}, err
	}
	return logs, nil
}
