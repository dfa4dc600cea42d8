package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /artisans の公開API
type ArtisanHandler struct {
	uc *usecase.ArtisanUsecase
}

// DI
func NewArtisanHandler(uc *usecase.ArtisanUsecase) *ArtisanHandler {
	return &ArtisanHandler{uc: uc}
}

func (h *ArtisanHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/artisans", h.list)
	e.GET("/artisans/:id", h.detail)
}

func (h *ArtisanHandler) list(c echo.Context) error {
	in := usecase.ListArtisansInput{
		FeaturedOnly: c.QueryParam("featured") == "true",
		Specialty:    c.QueryParam("specialty"),
	}

	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		in.Limit = l
	}

	out, err := h.uc.ListArtisans(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ArtisanHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetArtisan(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
