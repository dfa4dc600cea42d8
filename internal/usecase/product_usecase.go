package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page      int
	Limit     int
	Category  string
	Artisan   string
	Featured  *bool
	Premium   *bool
	InStock   *bool
	MinPrice  *int64
	MaxPrice  *int64
	Search    string
	SortBy    string
	SortOrder string
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

type ProductListOutput struct {
	Items      []model.Product `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Search) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid search")
	}
	switch in.SortBy {
	case "", "created_at", "price", "rating", "name":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}
	switch in.SortOrder {
	case "", "asc", "desc":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort order")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:      in.Page,
		Limit:     in.Limit,
		Category:  in.Category,
		Artisan:   in.Artisan,
		Featured:  in.Featured,
		Premium:   in.Premium,
		InStock:   in.InStock,
		MinPrice:  in.MinPrice,
		MaxPrice:  in.MaxPrice,
		Search:    in.Search,
		SortBy:    in.SortBy,
		SortOrder: in.SortOrder,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	totalPages := total / int64(in.Limit)
	if total%int64(in.Limit) != 0 {
		totalPages++
	}

	return ProductListOutput{
		Items: items,
		Pagination: Pagination{
			Page:       in.Page,
			Limit:      in.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// IDで商品取得
func (u *ProductUsecase) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}
