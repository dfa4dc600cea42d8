package usecase

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"app/internal/domain/model"
	"app/internal/infra/cache"
	repo "app/internal/repository"

	"golang.org/x/sync/singleflight"
)

// CartUsecase は /cart の業務ロジックです。
// Cart と CartItem のRepositoryを分離して受け取ります。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	cache        cache.CartCache
	sfg          singleflight.Group // 同一キーのcache missをまとめる
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	cartCache cache.CartCache,
) *CartUsecase {
	if cartCache == nil {
		cartCache = cache.NewNoopCache()
	}
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		cache:        cartCache,
	}
}

// CartItemResponse は1明細分。priceはunit_price_snapshot（追加時点の価格）を返す。
type CartItemResponse struct {
	ProductID   int64  `json:"product_id"`
	Name        string `json:"name"`
	ArtisanName string `json:"artisan_name"`
	ImageURL    string `json:"image_url,omitempty"`
	Price       int64  `json:"price"`
	Quantity    int64  `json:"quantity"`
}

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	Total     int64              `json:"total"`
	ItemCount int64              `json:"item_count"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

// 数量変更はproduct_idで行う（1カート1商品1明細）
type UpdateCartItemInput struct {
	ProductID int64
	Quantity  int64
}

// GetCart はカート取得（無ければ作って空を返す）。読みはキャッシュ経由。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	v, err, _ := u.sfg.Do(strconv.FormatInt(userID, 10), func() (interface{}, error) {
		items, cacheErr := u.cache.Get(ctx, userID)
		if cacheErr == nil {
			return items, nil
		}
		if !errors.Is(cacheErr, cache.ErrCacheMiss) {
			log.Printf("cart cache get error: %v", cacheErr)
		}

		items, loadErr := u.loadItems(ctx, userID)
		if loadErr != nil {
			return nil, loadErr
		}

		if setErr := u.cache.Set(ctx, userID, items); setErr != nil {
			log.Printf("cart cache set error: %v", setErr)
		}
		return items, nil
	})
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, v.([]model.CartItem))
}

// RefreshCart はキャッシュを捨ててDBから取り直す。
func (u *CartUsecase) RefreshCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	u.invalidateCache(userID)

	items, err := u.loadItems(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if setErr := u.cache.Set(ctx, userID, items); setErr != nil {
		log.Printf("cart cache set error: %v", setErr)
	}

	return u.buildCartResponse(ctx, items)
}

// AddToCart はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// 商品チェック（存在・在庫）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.InStock {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "out of stock")
	}

	// カート取得（無ければ作成）
	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// Upsert（同一商品は加算）。unit_price_snapshotは追加時点の価格。
	if err := u.cartItemRepo.UpsertByCartAndProduct(ctx, cart.ID, in.ProductID, in.Quantity, p.Price); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.invalidateCache(userID)
	return u.respondFromDB(ctx, cart.ID)
}

// 数量変更。0以下は implicit remove にせず必ず拒否する。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID int64, in UpdateCartItemInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "item not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if _, err := u.cartItemRepo.FindByCartAndProduct(ctx, cart.ID, in.ProductID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "item not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.UpdateQuantityByProduct(ctx, cart.ID, in.ProductID, in.Quantity); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "item not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.invalidateCache(userID)
	return u.respondFromDB(ctx, cart.ID)
}

// 明細削除。無い明細の削除も成功（冪等）。
func (u *CartUsecase) RemoveFromCart(ctx context.Context, userID int64, productID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.DeleteByProduct(ctx, cart.ID, productID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.invalidateCache(userID)
	return u.respondFromDB(ctx, cart.ID)
}

// 全明細を削除
func (u *CartUsecase) ClearCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartRepo.Clear(ctx, cart.ID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.invalidateCache(userID)
	return u.respondFromDB(ctx, cart.ID)
}

// loadItems はカートを（無ければ作って）明細一覧を返す。
func (u *CartUsecase) loadItems(ctx context.Context, userID int64) ([]model.CartItem, error) {
	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.cartItemRepo.ListByCartID(ctx, cart.ID)
}

func (u *CartUsecase) respondFromDB(ctx context.Context, cartID int64) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartResponse(ctx, items)
}

// 明細一覧からCartResponseを作る。
// 商品が消えた明細は表示からも合計からも落とす。DB障害はエラーとして返す。
func (u *CartUsecase) buildCartResponse(ctx context.Context, items []model.CartItem) (CartResponse, error) {
	respItems := make([]CartItemResponse, 0, len(items))
	lines := make([]PricedLine, 0, len(items))

	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		respItems = append(respItems, CartItemResponse{
			ProductID:   it.ProductID,
			Name:        p.Name,
			ArtisanName: p.ArtisanName,
			ImageURL:    p.ImageURL,
			Price:       it.UnitPriceSnapshot,
			Quantity:    it.Quantity,
		})
		lines = append(lines, PricedLine{UnitPrice: it.UnitPriceSnapshot, Quantity: it.Quantity})
	}

	total, count := CalcTotals(lines)
	return CartResponse{Items: respItems, Total: total, ItemCount: count}, nil
}

func (u *CartUsecase) invalidateCache(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := u.cache.Delete(ctx, userID); err != nil {
		log.Printf("cart cache delete error: %v", err)
	}
}
