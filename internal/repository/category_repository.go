package repository

import (
	"context"

	"app/internal/domain/model"
)

type CategoryRepository interface {
	List(ctx context.Context, featuredOnly bool) ([]model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
}
