package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /guest-cartのHTTP（未ログイン用、cookie保存）
type GuestCartHandler struct {
	cfg config.Config
}

// DI
func NewGuestCartHandler(cfg config.Config) *GuestCartHandler {
	return &GuestCartHandler{cfg: cfg}
}

// 商品スナップショットはクライアントから渡されたものをそのまま信用する。
// サーバー側の在庫・価格の真正チェックはログイン時の統合で行う。
type GuestAddRequest struct {
	ProductID   int64  `json:"product_id"`
	Name        string `json:"name"`
	ArtisanName string `json:"artisan_name"`
	ImageURL    string `json:"image_url"`
	Price       int64  `json:"price"`
	Quantity    int64  `json:"quantity"`
}

type GuestUpdateRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

func (h *GuestCartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/guest-cart")

	g.GET("", h.get)
	g.POST("", h.add)
	g.PUT("", h.update)
	g.DELETE("", h.remove)
	g.POST("/clear", h.clear)
}

func (h *GuestCartHandler) guestCart(c echo.Context) *usecase.GuestCart {
	return usecase.NewGuestCart(newCookieGuestCartStore(c, h.cfg.IsProd()))
}

func (h *GuestCartHandler) get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.guestCart(c).Get())
}

func (h *GuestCartHandler) add(c echo.Context) error {
	var req GuestAddRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.guestCart(c).Add(usecase.GuestItem{
		ProductID:   req.ProductID,
		Name:        req.Name,
		ArtisanName: req.ArtisanName,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *GuestCartHandler) update(c echo.Context) error {
	var req GuestUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.guestCart(c).UpdateQuantity(req.ProductID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DELETE /guest-cart?product_id=123
func (h *GuestCartHandler) remove(c echo.Context) error {
	productID, err := strconv.ParseInt(c.QueryParam("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product_id"})
	}

	out, removeErr := h.guestCart(c).Remove(productID)
	if removeErr != nil {
		return writeError(c, removeErr)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *GuestCartHandler) clear(c echo.Context) error {
	h.guestCart(c).Clear()
	return c.JSON(http.StatusOK, usecase.GuestCartData{Items: []usecase.GuestItem{}})
}
