package usecase

import (
	"context"
	"net/http"
)

// ログイン直後のゲストカート引き継ぎの結果。
// Droppedは在庫切れ等でマージできなかった明細数。
type MergeResult struct {
	Cart    CartResponse `json:"cart"`
	Merged  int          `json:"merged"`
	Dropped int          `json:"dropped"`
}

// MergeGuestCart はゲストカートをログインユーザーのカートへ統合する。
// 明細ごとにAddToCartを呼ぶので、同一商品は数量加算、価格は現在の商品価格で
// 取り直しになる（ゲスト側のスナップショットは引き継がない）。
//
// 商品消滅・在庫切れの明細はスキップして続行し、DB障害のときだけ中断する。
// ストアのクリアは全明細を流し終えた後。途中で中断したらゲストカートは残す。
func (u *CartUsecase) MergeGuestCart(ctx context.Context, userID int64, guest *GuestCart) (MergeResult, error) {
	if userID <= 0 {
		return MergeResult{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	data := guest.Get()

	// 空なら何もしない（再実行しても安全）
	if len(data.Items) == 0 {
		cart, err := u.GetCart(ctx, userID)
		if err != nil {
			return MergeResult{}, err
		}
		return MergeResult{Cart: cart}, nil
	}

	merged := 0
	dropped := 0

	for _, it := range data.Items {
		_, err := u.AddToCart(ctx, userID, AddCartInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
		if err == nil {
			merged++
			continue
		}

		if he, ok := AsHTTPError(err); ok && he.Status != http.StatusInternalServerError {
			// この明細だけ落として残りは続行
			dropped++
			continue
		}
		return MergeResult{}, err
	}

	guest.Clear()

	// 最後に一度だけ取り直して一貫した状態を返す
	cart, err := u.RefreshCart(ctx, userID)
	if err != nil {
		return MergeResult{}, err
	}

	return MergeResult{Cart: cart, Merged: merged, Dropped: dropped}, nil
}
