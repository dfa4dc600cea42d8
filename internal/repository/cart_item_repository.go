package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	// 同一商品は数量加算。新規行はunit_price_snapshotを保存。
	UpsertByCartAndProduct(ctx context.Context, cartID int64, productID int64, addQty int64, unitPriceSnapshot int64) error
	UpdateQuantityByProduct(ctx context.Context, cartID int64, productID int64, qty int64) error
	DeleteByProduct(ctx context.Context, cartID int64, productID int64) error
	FindByCartAndProduct(ctx context.Context, cartID int64, productID int64) (model.CartItem, error)
}
