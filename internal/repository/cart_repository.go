package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	// 無ければ空カートを作って返す。二重作成はDBのunique制約で弾き、既存を取り直す。
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)
	Clear(ctx context.Context, cartID int64) error
}
