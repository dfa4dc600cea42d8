package repository

import (
	"context"

	"app/internal/domain/model"
)

// 作家一覧の検索条件
type ArtisanListQuery struct {
	FeaturedOnly bool   // verifiedのみ
	Specialty    string // 部分一致
	Limit        int
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id int64) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)

	// 作家（artisan_profile持ちユーザー）をrating降順で返す
	ListArtisans(ctx context.Context, q ArtisanListQuery) ([]model.User, error)
	FindArtisanByID(ctx context.Context, id int64) (model.User, error)
}
