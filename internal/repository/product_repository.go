package repository

import (
	"context"

	"app/internal/domain/model"
)

// 一覧検索
type ProductListQuery struct {
	Page      int
	Limit     int
	Category  string
	Artisan   string // artisan_nameの部分一致
	Featured  *bool
	Premium   *bool
	InStock   *bool
	MinPrice  *int64
	MaxPrice  *int64
	Search    string
	SortBy    string // created_at / price / rating / name
	SortOrder string // asc / desc
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	ListByArtisan(ctx context.Context, artisanID int64) ([]model.Product, error)
	CountByArtisan(ctx context.Context, artisanID int64) (int64, error)
	Create(ctx context.Context, p model.Product) (model.Product, error)
}
