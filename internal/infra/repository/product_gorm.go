package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 商品を、フィルタ/価格帯/検索/ソート/ページング付きで返す。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if strings.TrimSpace(q.Category) != "" {
		tx = tx.Where("category = ?", strings.TrimSpace(q.Category))
	}

	// 作家名は部分一致
	if strings.TrimSpace(q.Artisan) != "" {
		like := "%" + strings.TrimSpace(q.Artisan) + "%"
		tx = tx.Where("artisan_name ILIKE ?", like)
	}

	if q.Featured != nil {
		tx = tx.Where("featured = ?", *q.Featured)
	}
	if q.Premium != nil {
		tx = tx.Where("premium = ?", *q.Premium)
	}
	if q.InStock != nil {
		tx = tx.Where("in_stock = ?", *q.InStock)
	}

	//価格帯
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}

	// 検索はname/descriptionを対象
	if strings.TrimSpace(q.Search) != "" {
		like := "%" + strings.TrimSpace(q.Search) + "%"
		tx = tx.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	//sort（列名はホワイトリスト）
	col := "created_at"
	switch q.SortBy {
	case "price":
		col = "price"
	case "rating":
		col = "rating"
	case "name":
		col = "name"
	}
	dir := "desc"
	if q.SortOrder == "asc" {
		dir = "asc"
	}
	tx = tx.Order(col + " " + dir).Order("id " + dir)

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 作家の商品を一覧取得
func (r *ProductGormRepository) ListByArtisan(ctx context.Context, artisanID int64) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).
		Where("artisan_id = ?", artisanID).
		Order("created_at desc").
		Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// 作家の商品数
func (r *ProductGormRepository) CountByArtisan(ctx context.Context, artisanID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("artisan_id = ?", artisanID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}
