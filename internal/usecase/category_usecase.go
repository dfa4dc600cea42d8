package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
}

// DI
func NewCategoryUsecase(categoryRepo repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categoryRepo: categoryRepo}
}

func (u *CategoryUsecase) ListCategories(ctx context.Context, featuredOnly bool) ([]model.Category, error) {
	categories, err := u.categoryRepo.List(ctx, featuredOnly)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return categories, nil
}
