package handler

import (
	"net/http"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /authのHTTP
type AuthHandler struct {
	authUC *usecase.AuthUsecase
	cartUC *usecase.CartUsecase
	cfg    config.Config
}

// DI。cartUCはログイン時のゲストカート統合に使う。
func NewAuthHandler(authUC *usecase.AuthUsecase, cartUC *usecase.CartUsecase, cfg config.Config) *AuthHandler {
	return &AuthHandler{authUC: authUC, cartUC: cartUC, cfg: cfg}
}

type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	IsArtisan bool   `json:"is_artisan"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User usecase.UserResponse `json:"user"`
	// ログイン時のみ。ゲストカートの統合結果。
	CartMerge *usecase.MergeResult `json:"cart_merge,omitempty"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/auth")
	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.POST("/logout", h.logout)

	me := g.Group("/me")
	me.Use(middleware.AuthJWT(h.cfg))
	me.GET("", h.me)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.authUC.Register(c.Request().Context(), usecase.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		IsArtisan: req.IsArtisan,
	})
	if err != nil {
		return writeError(c, err)
	}

	h.setAuthCookie(c, out.Token, out.ExpiresAt)
	return c.JSON(http.StatusCreated, AuthResponse{User: out.User})
}

// ログイン成功時にゲストカートをサーバーカートへ統合する。
// 統合の失敗はログイン自体を失敗させない。
func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.authUC.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	h.setAuthCookie(c, out.Token, out.ExpiresAt)

	resp := AuthResponse{User: out.User}

	guest := usecase.NewGuestCart(newCookieGuestCartStore(c, h.cfg.IsProd()))
	if merge, mergeErr := h.cartUC.MergeGuestCart(c.Request().Context(), out.User.ID, guest); mergeErr == nil {
		resp.CartMerge = &merge
	} else {
		c.Logger().Warnf("guest cart merge failed: %v", mergeErr)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.IsProd(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
	}

	out, err := h.authUC.Me(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, AuthResponse{User: out})
}

func (h *AuthHandler) setAuthCookie(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.IsProd(),
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
	})
}
