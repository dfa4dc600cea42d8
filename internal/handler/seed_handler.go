package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /seed（開発環境のみ）
type SeedHandler struct {
	uc  *usecase.SeedUsecase
	cfg config.Config
}

// DI
func NewSeedHandler(uc *usecase.SeedUsecase, cfg config.Config) *SeedHandler {
	return &SeedHandler{uc: uc, cfg: cfg}
}

func (h *SeedHandler) RegisterRoutes(e *echo.Echo) {
	if h.cfg.IsProd() {
		return
	}
	e.POST("/seed", h.seed)
}

func (h *SeedHandler) seed(c echo.Context) error {
	out, err := h.uc.Run(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
