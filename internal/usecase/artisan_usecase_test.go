package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestArtisanUsecase_ListArtisans(t *testing.T) {
	userRepo := new(UserRepoMock)
	productRepo := new(ProductRepoMock)
	uc := usecase.NewArtisanUsecase(userRepo, productRepo)
	ctx := context.Background()

	users := []model.User{
		{
			ID:   1,
			Name: "Maria Rodriguez",
			ArtisanProfile: &model.ArtisanProfile{
				UserID:      1,
				Bio:         "Ceramic artist",
				Location:    "Santa Fe, NM",
				Specialties: "Pottery, Ceramics",
				Verified:    true,
				Rating:      4.9,
			},
		},
		{ID: 2, Name: "John Smith"}, // プロフィール未設定でも落ちない
	}
	userRepo.On("ListArtisans", ctx, mock.Anything).Return(users, nil)
	productRepo.On("CountByArtisan", ctx, int64(1)).Return(int64(3), nil)
	productRepo.On("CountByArtisan", ctx, int64(2)).Return(int64(0), nil)

	out, err := uc.ListArtisans(ctx, usecase.ListArtisansInput{})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Maria Rodriguez", out[0].Name)
	assert.Equal(t, []string{"Pottery", "Ceramics"}, out[0].Specialties)
	assert.True(t, out[0].Verified)
	assert.Equal(t, int64(3), out[0].ProductCount)

	assert.Equal(t, []string{}, out[1].Specialties)
	assert.Equal(t, int64(0), out[1].ProductCount)
}

func TestArtisanUsecase_ListArtisans_InvalidLimit(t *testing.T) {
	uc := usecase.NewArtisanUsecase(new(UserRepoMock), new(ProductRepoMock))

	for _, limit := range []int{-1, 101} {
		_, err := uc.ListArtisans(context.Background(), usecase.ListArtisansInput{Limit: limit})
		assertErrStatus(t, err, 400)
	}
}

func TestArtisanUsecase_GetArtisan(t *testing.T) {
	userRepo := new(UserRepoMock)
	productRepo := new(ProductRepoMock)
	uc := usecase.NewArtisanUsecase(userRepo, productRepo)
	ctx := context.Background()

	userRepo.On("FindArtisanByID", ctx, int64(1)).Return(model.User{
		ID:   1,
		Name: "Maria Rodriguez",
		ArtisanProfile: &model.ArtisanProfile{
			UserID:      1,
			Specialties: "Pottery",
			Rating:      4.9,
		},
	}, nil)
	productRepo.On("ListByArtisan", ctx, int64(1)).Return([]model.Product{
		{ID: 10, Name: "Bowl", ArtisanID: 1},
		{ID: 11, Name: "Vase", ArtisanID: 1},
	}, nil)

	out, err := uc.GetArtisan(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, "Maria Rodriguez", out.Name)
	assert.Equal(t, int64(2), out.ProductCount)
	assert.Len(t, out.Products, 2)
}

func TestArtisanUsecase_GetArtisan_NotFound(t *testing.T) {
	userRepo := new(UserRepoMock)
	uc := usecase.NewArtisanUsecase(userRepo, new(ProductRepoMock))
	ctx := context.Background()

	userRepo.On("FindArtisanByID", ctx, int64(99)).Return(model.User{}, repo.ErrNotFound)

	_, err := uc.GetArtisan(ctx, 99)
	assertErrStatus(t, err, 404)
}
