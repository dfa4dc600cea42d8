package cache

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrCacheMiss = errors.New("cache miss")

// 組み立て済みカート明細の読み取りキャッシュ。
// キャッシュ失敗は呼び出し側でログだけ残して握りつぶす。
type CartCache interface {
	Get(ctx context.Context, userID int64) ([]model.CartItem, error)
	Set(ctx context.Context, userID int64, items []model.CartItem) error
	Delete(ctx context.Context, userID int64) error
}

// Redis無し構成用
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (NoopCache) Get(ctx context.Context, userID int64) ([]model.CartItem, error) {
	return nil, ErrCacheMiss
}

func (NoopCache) Set(ctx context.Context, userID int64, items []model.CartItem) error {
	return nil
}

func (NoopCache) Delete(ctx context.Context, userID int64) error {
	return nil
}
