package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type AdminGormRepository struct {
	db *gorm.DB
}

// DI
func NewAdminGormRepository(db *gorm.DB) *AdminGormRepository {
	return &AdminGormRepository{db: db}
}

// 管理者の新規作成。ユーザー名重複は ErrDuplicateUsername に変換する。
func (r *AdminGormRepository) Create(ctx context.Context, admin *model.Admin) error {
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		if isUniqueViolation(err) {
			return repo.ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *AdminGormRepository) FindByUsername(ctx context.Context, username string) (model.Admin, error) {
	var a model.Admin
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Admin{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Admin{}, err
	}
	return a, nil
}

func (r *AdminGormRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Admin{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
