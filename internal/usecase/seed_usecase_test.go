package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type CategoryRepoMock struct {
	mock.Mock
}

func (m *CategoryRepoMock) List(ctx context.Context, featuredOnly bool) ([]model.Category, error) {
	args := m.Called(ctx, featuredOnly)
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(model.Category), args.Error(1)
}

func TestCategoryUsecase_ListCategories(t *testing.T) {
	categoryRepo := new(CategoryRepoMock)
	uc := usecase.NewCategoryUsecase(categoryRepo)
	ctx := context.Background()

	categoryRepo.On("List", ctx, true).Return([]model.Category{
		{ID: 1, Name: "Pottery", Featured: true},
	}, nil)

	out, err := uc.ListCategories(ctx, true)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Pottery", out[0].Name)
}

func TestSeedUsecase_Run(t *testing.T) {
	userRepo := new(UserRepoMock)
	categoryRepo := new(CategoryRepoMock)
	productRepo := new(ProductRepoMock)
	uc := usecase.NewSeedUsecase(userRepo, categoryRepo, productRepo, plainHasher{})
	ctx := context.Background()

	categoryRepo.On("List", ctx, false).Return([]model.Category{}, nil)
	categoryRepo.On("Create", ctx, mock.Anything).Return(model.Category{}, nil)

	userRepo.On("Create", ctx, mock.MatchedBy(func(u model.User) bool {
		return u.IsArtisan && u.ArtisanProfile != nil && u.PasswordHash == "hashed:password123"
	})).Return(model.User{}, nil).Times(3)

	productRepo.On("Create", ctx, mock.Anything).Return(model.Product{}, nil)

	res, err := uc.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 6, res.Categories)
	assert.Equal(t, 3, res.Artisans)
	assert.Equal(t, 6, res.Products)
	categoryRepo.AssertNumberOfCalls(t, "Create", 6)
	productRepo.AssertNumberOfCalls(t, "Create", 6)
}

func TestSeedUsecase_Run_AlreadySeeded(t *testing.T) {
	userRepo := new(UserRepoMock)
	categoryRepo := new(CategoryRepoMock)
	productRepo := new(ProductRepoMock)
	uc := usecase.NewSeedUsecase(userRepo, categoryRepo, productRepo, plainHasher{})
	ctx := context.Background()

	categoryRepo.On("List", ctx, false).Return([]model.Category{{ID: 1, Name: "Pottery"}}, nil)

	_, err := uc.Run(ctx)
	assertErrStatus(t, err, 409)
	categoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
