package usecase_test

import (
	"context"
	"strings"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ProductRepoMock struct {
	mock.Mock
}

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *ProductRepoMock) ListByArtisan(ctx context.Context, artisanID int64) ([]model.Product, error) {
	args := m.Called(ctx, artisanID)
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *ProductRepoMock) CountByArtisan(ctx context.Context, artisanID int64) (int64, error) {
	args := m.Called(ctx, artisanID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Product), args.Error(1)
}

func TestProductUsecase_ListProducts(t *testing.T) {
	productRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(productRepo)
	ctx := context.Background()

	products := []model.Product{
		{ID: 1, Name: "Handwoven Ceramic Bowl", Category: "pottery", Price: 8900},
		{ID: 2, Name: "Silver Wire Earrings", Category: "jewelry", Price: 4500},
	}
	productRepo.On("List", ctx, mock.MatchedBy(func(q repo.ProductListQuery) bool {
		return q.Page == 1 && q.Limit == 12 && q.Category == "pottery"
	})).Return(products, int64(25), nil)

	out, err := uc.ListProducts(ctx, usecase.ListProductsInput{Page: 1, Limit: 12, Category: "pottery"})
	require.NoError(t, err)

	assert.Len(t, out.Items, 2)
	assert.Equal(t, int64(25), out.Pagination.Total)
	// 25件 / 12件ずつ = 3ページ
	assert.Equal(t, int64(3), out.Pagination.TotalPages)
}

func TestProductUsecase_ListProducts_InvalidInput(t *testing.T) {
	productRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(productRepo)
	ctx := context.Background()

	cases := []usecase.ListProductsInput{
		{Page: 0, Limit: 12},
		{Page: -1, Limit: 12},
		{Page: 1, Limit: 0},
		{Page: 1, Limit: 101},
		{Page: 1, Limit: 12, Search: strings.Repeat("a", 101)},
		{Page: 1, Limit: 12, SortBy: "password_hash"}, // ホワイトリスト外
		{Page: 1, Limit: 12, SortOrder: "sideways"},
	}
	for _, in := range cases {
		_, err := uc.ListProducts(ctx, in)
		assertErrStatus(t, err, 400)
	}
	productRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestProductUsecase_ListProducts_SortWhitelist(t *testing.T) {
	productRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(productRepo)
	ctx := context.Background()

	productRepo.On("List", ctx, mock.Anything).Return([]model.Product{}, int64(0), nil)

	for _, sortBy := range []string{"", "created_at", "price", "rating", "name"} {
		_, err := uc.ListProducts(ctx, usecase.ListProductsInput{Page: 1, Limit: 12, SortBy: sortBy, SortOrder: "desc"})
		assert.NoError(t, err, "sort_by=%q", sortBy)
	}
}

func TestProductUsecase_GetProduct(t *testing.T) {
	productRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(productRepo)
	ctx := context.Background()

	productRepo.On("FindByID", ctx, int64(1)).Return(model.Product{ID: 1, Name: "Bowl"}, nil)

	p, err := uc.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Bowl", p.Name)
}

func TestProductUsecase_GetProduct_NotFound(t *testing.T) {
	productRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(productRepo)
	ctx := context.Background()

	productRepo.On("FindByID", ctx, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProduct(ctx, 99)
	assertErrStatus(t, err, 404)
}

func TestProductUsecase_GetProduct_InvalidID(t *testing.T) {
	productRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(productRepo)

	_, err := uc.GetProduct(context.Background(), 0)
	assertErrStatus(t, err, 400)
}
