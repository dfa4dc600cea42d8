package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

// カテゴリ一覧（名前昇順）
func (r *CategoryGormRepository) List(ctx context.Context, featuredOnly bool) ([]model.Category, error) {
	var categories []model.Category

	tx := r.db.WithContext(ctx).Model(&model.Category{})
	if featuredOnly {
		tx = tx.Where("featured = ?", true)
	}

	if err := tx.Order("name asc").Find(&categories).Error; err != nil {
		return []model.Category{}, err
	}
	return categories, nil
}

// カテゴリの作成
func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Category{}, err
	}
	return c, nil
}
