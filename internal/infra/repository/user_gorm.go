package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type UserGormRepository struct {
	db *gorm.DB
}

// DI
func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

// emailでユーザーを取得
func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.TrimSpace(strings.ToLower(email))).
		First(&u).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

// IDでユーザーを取得
func (r *UserGormRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

// ユーザーの作成（email重複はErrDuplicate）
func (r *UserGormRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	u.Email = strings.TrimSpace(strings.ToLower(u.Email))

	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.User{}, repo.ErrDuplicate
		}
		return model.User{}, err
	}
	return u, nil
}

// 作家一覧（プロフィール付き、rating降順）
func (r *UserGormRepository) ListArtisans(ctx context.Context, q repo.ArtisanListQuery) ([]model.User, error) {
	var users []model.User

	tx := r.db.WithContext(ctx).
		Model(&model.User{}).
		Joins("join artisan_profiles on artisan_profiles.user_id = users.id").
		Where("users.is_artisan = ?", true).
		Preload("ArtisanProfile")

	if q.FeaturedOnly {
		tx = tx.Where("artisan_profiles.verified = ?", true)
	}
	if strings.TrimSpace(q.Specialty) != "" {
		like := "%" + strings.TrimSpace(q.Specialty) + "%"
		tx = tx.Where("artisan_profiles.specialties ILIKE ?", like)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	if err := tx.Order("artisan_profiles.rating desc").Find(&users).Error; err != nil {
		return []model.User{}, err
	}
	return users, nil
}

// IDで作家を取得（プロフィール付き）
func (r *UserGormRepository) FindArtisanByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("is_artisan = ?", true).
		Preload("ArtisanProfile").
		First(&u, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	if u.ArtisanProfile == nil {
		return model.User{}, repo.ErrNotFound
	}
	return u, nil
}
