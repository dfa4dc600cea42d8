package usecase_test

import (
	"context"
	"errors"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guestCartWith(t *testing.T, items ...usecase.GuestItem) (*usecase.GuestCart, *usecase.InMemoryGuestCartStore) {
	t.Helper()
	store := &usecase.InMemoryGuestCartStore{}
	g := usecase.NewGuestCart(store)
	for _, it := range items {
		_, err := g.Add(it)
		require.NoError(t, err)
	}
	return g, store
}

// ゲスト{A:2,B:1} + 既存{B:3} -> {A:2,B:4}。価格は現在の商品価格で取り直し。
func TestMergeGuestCart_SumsQuantitiesIntoExistingCart(t *testing.T) {
	pA := model.Product{ID: 1, Name: "Bowl", ArtisanName: "Maria", Price: 8900, InStock: true}
	pB := model.Product{ID: 2, Name: "Earrings", ArtisanName: "John", Price: 4500, InStock: true}
	uc, _, _ := newCartUsecaseForTest(pA, pB)
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 2, Quantity: 3})
	require.NoError(t, err)

	// ゲスト側のスナップショット価格は古い値にしておく
	guest, store := guestCartWith(t,
		usecase.GuestItem{ProductID: 1, Name: "Bowl", Price: 100, Quantity: 2},
		usecase.GuestItem{ProductID: 2, Name: "Earrings", Price: 100, Quantity: 1},
	)

	res, err := uc.MergeGuestCart(ctx, 1, guest)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Merged)
	assert.Equal(t, 0, res.Dropped)
	assertCartInvariants(t, res.Cart)

	byProduct := map[int64]usecase.CartItemResponse{}
	for _, it := range res.Cart.Items {
		byProduct[it.ProductID] = it
	}
	require.Len(t, byProduct, 2)
	assert.Equal(t, int64(2), byProduct[1].Quantity)
	assert.Equal(t, int64(4), byProduct[2].Quantity)
	// 古いゲスト価格ではなく現在価格
	assert.Equal(t, int64(8900), byProduct[1].Price)
	assert.Equal(t, int64(4500), byProduct[2].Price)

	_, has := store.Get()
	assert.False(t, has, "guest store should be cleared after merge")
	assert.Empty(t, guest.Get().Items)
}

// 初ログイン（サーバー側カート無し）でも両明細が入る
func TestMergeGuestCart_FreshLogin(t *testing.T) {
	pA := model.Product{ID: 1, Name: "Bowl", ArtisanName: "Maria", Price: 1000, InStock: true}
	pB := model.Product{ID: 2, Name: "Vase", ArtisanName: "Maria", Price: 2000, InStock: true}
	uc, _, _ := newCartUsecaseForTest(pA, pB)

	guest, store := guestCartWith(t,
		usecase.GuestItem{ProductID: 1, Price: 1000, Quantity: 1},
		usecase.GuestItem{ProductID: 2, Price: 2000, Quantity: 2},
	)

	res, err := uc.MergeGuestCart(context.Background(), 1, guest)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Merged)
	assert.Len(t, res.Cart.Items, 2)
	assert.Equal(t, int64(1000+2*2000), res.Cart.Total)
	assert.Equal(t, int64(3), res.Cart.ItemCount)

	_, has := store.Get()
	assert.False(t, has)
}

func TestMergeGuestCart_EmptyGuestIsNoop(t *testing.T) {
	p := model.Product{ID: 1, Name: "Bowl", ArtisanName: "Maria", Price: 1000, InStock: true}
	uc, _, _ := newCartUsecaseForTest(p)
	ctx := context.Background()

	before, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 1, Quantity: 2})
	require.NoError(t, err)

	guest, _ := guestCartWith(t)

	res, err := uc.MergeGuestCart(ctx, 1, guest)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Merged)
	assert.Equal(t, 0, res.Dropped)
	assert.Equal(t, before, res.Cart)
}

// 消えた商品・在庫切れはその明細だけ落として続行する
func TestMergeGuestCart_DropsUnavailableItems(t *testing.T) {
	inStock := model.Product{ID: 1, Name: "Bowl", ArtisanName: "Maria", Price: 1000, InStock: true}
	outOfStock := model.Product{ID: 2, Name: "Vase", ArtisanName: "Maria", Price: 2000, InStock: false}
	uc, _, _ := newCartUsecaseForTest(inStock, outOfStock)

	guest, store := guestCartWith(t,
		usecase.GuestItem{ProductID: 1, Price: 1000, Quantity: 1},
		usecase.GuestItem{ProductID: 2, Price: 2000, Quantity: 1}, // 在庫切れ
		usecase.GuestItem{ProductID: 99, Price: 500, Quantity: 1}, // 商品消滅
	)

	res, err := uc.MergeGuestCart(context.Background(), 1, guest)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Merged)
	assert.Equal(t, 2, res.Dropped)
	require.Len(t, res.Cart.Items, 1)
	assert.Equal(t, int64(1), res.Cart.Items[0].ProductID)

	// 一部落ちてもマージは完了扱いでストアはクリア
	_, has := store.Get()
	assert.False(t, has)
}

// DB障害では中断し、ゲストカートは消さない（再試行できる）
func TestMergeGuestCart_DBErrorKeepsGuestCart(t *testing.T) {
	p := model.Product{ID: 1, Name: "Bowl", ArtisanName: "Maria", Price: 1000, InStock: true}
	uc, _, prodRepo := newCartUsecaseForTest(p)
	prodRepo.failIDs[2] = errors.New("connection reset")

	guest, store := guestCartWith(t,
		usecase.GuestItem{ProductID: 1, Price: 1000, Quantity: 1},
		usecase.GuestItem{ProductID: 2, Price: 2000, Quantity: 1},
	)

	_, err := uc.MergeGuestCart(context.Background(), 1, guest)
	assertErrStatus(t, err, 500)

	_, has := store.Get()
	assert.True(t, has, "guest store must survive an aborted merge")
	assert.Len(t, guest.Get().Items, 2)
}

// 分けてマージしても一度にマージしても最終数量は同じ
func TestMergeGuestCart_MergeLaw(t *testing.T) {
	p := model.Product{ID: 1, Name: "Bowl", ArtisanName: "Maria", Price: 1000, InStock: true}
	ctx := context.Background()

	split, _, _ := newCartUsecaseForTest(p)
	g1, _ := guestCartWith(t, usecase.GuestItem{ProductID: 1, Price: 1000, Quantity: 2})
	_, err := split.MergeGuestCart(ctx, 1, g1)
	require.NoError(t, err)
	g2, _ := guestCartWith(t, usecase.GuestItem{ProductID: 1, Price: 1000, Quantity: 3})
	splitRes, err := split.MergeGuestCart(ctx, 1, g2)
	require.NoError(t, err)

	once, _, _ := newCartUsecaseForTest(p)
	g3, _ := guestCartWith(t, usecase.GuestItem{ProductID: 1, Price: 1000, Quantity: 5})
	onceRes, err := once.MergeGuestCart(ctx, 1, g3)
	require.NoError(t, err)

	assert.Equal(t, onceRes.Cart, splitRes.Cart)
	require.Len(t, onceRes.Cart.Items, 1)
	assert.Equal(t, int64(5), onceRes.Cart.Items[0].Quantity)
}
