package usecase

import (
	"encoding/json"
	"log"
	"net/http"
)

// GuestCartStore は未ログイン客のセッションKVストア（cookieやsessionStorage相当）。
type GuestCartStore interface {
	Get() (string, bool)
	Set(value string) error
	Remove()
}

// ゲストカートの1明細。商品情報は呼び出し側が渡したスナップショットを信用する。
type GuestItem struct {
	ProductID   int64  `json:"product_id"`
	Name        string `json:"name"`
	ArtisanName string `json:"artisan_name"`
	ImageURL    string `json:"image_url,omitempty"`
	Price       int64  `json:"price"`
	Quantity    int64  `json:"quantity"`
}

type GuestCartData struct {
	Items     []GuestItem `json:"items"`
	Total     int64       `json:"total"`
	ItemCount int64       `json:"item_count"`
}

// GuestCart はサーバー永続化なしのカート。毎回ストアから読み、毎回書き戻す。
type GuestCart struct {
	store GuestCartStore
}

func NewGuestCart(store GuestCartStore) *GuestCart {
	return &GuestCart{store: store}
}

// Get は現在のゲストカートを返す。壊れたデータは空カート扱い（エラーにしない）。
func (g *GuestCart) Get() GuestCartData {
	return g.load()
}

// Add は追加（同一商品は数量加算）。
func (g *GuestCart) Add(item GuestItem) (GuestCartData, error) {
	if item.ProductID <= 0 {
		return GuestCartData{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if item.Quantity < 1 {
		return GuestCartData{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	data := g.load()

	found := false
	for i := range data.Items {
		if data.Items[i].ProductID == item.ProductID {
			// 既存行のスナップショット価格は保持する
			data.Items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		data.Items = append(data.Items, item)
	}

	return g.save(data), nil
}

// UpdateQuantity は数量変更。0以下は拒否。
func (g *GuestCart) UpdateQuantity(productID int64, quantity int64) (GuestCartData, error) {
	if productID <= 0 {
		return GuestCartData{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if quantity < 1 {
		return GuestCartData{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	data := g.load()

	for i := range data.Items {
		if data.Items[i].ProductID == productID {
			data.Items[i].Quantity = quantity
			return g.save(data), nil
		}
	}

	return GuestCartData{}, NewHTTPError(http.StatusNotFound, "item not found")
}

// Remove は明細削除（無くても成功）。
func (g *GuestCart) Remove(productID int64) (GuestCartData, error) {
	if productID <= 0 {
		return GuestCartData{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	data := g.load()

	kept := data.Items[:0]
	for _, it := range data.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	data.Items = kept

	return g.save(data), nil
}

// Clear はストアごと破棄する。
func (g *GuestCart) Clear() {
	g.store.Remove()
}

func (g *GuestCart) load() GuestCartData {
	raw, ok := g.store.Get()
	if !ok || raw == "" {
		return emptyGuestCart()
	}

	var data GuestCartData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		// 壊れたストアは空カート扱い
		return emptyGuestCart()
	}
	if data.Items == nil {
		data.Items = []GuestItem{}
	}
	return data
}

// save は合計を再計算してからストアへ書き戻す。
// 書き込み失敗はログだけ残す（応答には計算済みカートを返す）。
func (g *GuestCart) save(data GuestCartData) GuestCartData {
	lines := make([]PricedLine, 0, len(data.Items))
	for _, it := range data.Items {
		lines = append(lines, PricedLine{UnitPrice: it.Price, Quantity: it.Quantity})
	}
	data.Total, data.ItemCount = CalcTotals(lines)

	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("guest cart marshal error: %v", err)
		return data
	}
	if err := g.store.Set(string(raw)); err != nil {
		log.Printf("guest cart store set error: %v", err)
	}
	return data
}

func emptyGuestCart() GuestCartData {
	return GuestCartData{Items: []GuestItem{}}
}

// InMemoryGuestCartStore はテスト用の素朴なストア。
type InMemoryGuestCartStore struct {
	value string
	has   bool
}

func (s *InMemoryGuestCartStore) Get() (string, bool) { return s.value, s.has }

func (s *InMemoryGuestCartStore) Set(value string) error {
	s.value = value
	s.has = true
	return nil
}

func (s *InMemoryGuestCartStore) Remove() {
	s.value = ""
	s.has = false
}
