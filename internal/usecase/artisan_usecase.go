package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ArtisanUsecase struct {
	userRepo    repo.UserRepository
	productRepo repo.ProductRepository
}

// DI
func NewArtisanUsecase(userRepo repo.UserRepository, productRepo repo.ProductRepository) *ArtisanUsecase {
	return &ArtisanUsecase{
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

type ListArtisansInput struct {
	FeaturedOnly bool
	Specialty    string
	Limit        int
}

// 一覧用の作家表現（プロフィール＋商品数）
type ArtisanResponse struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	ProfileImage string   `json:"profile_image,omitempty"`
	Bio          string   `json:"bio"`
	Location     string   `json:"location"`
	Specialties  []string `json:"specialties"`
	Verified     bool     `json:"verified"`
	Rating       float64  `json:"rating"`
	ProductCount int64    `json:"product_count"`
}

type ArtisanDetailResponse struct {
	ArtisanResponse
	Products []model.Product `json:"products"`
}

func (u *ArtisanUsecase) ListArtisans(ctx context.Context, in ListArtisansInput) ([]ArtisanResponse, error) {
	if in.Limit < 0 || in.Limit > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	users, err := u.userRepo.ListArtisans(ctx, repo.ArtisanListQuery{
		FeaturedOnly: in.FeaturedOnly,
		Specialty:    in.Specialty,
		Limit:        in.Limit,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]ArtisanResponse, 0, len(users))
	for _, user := range users {
		count, err := u.productRepo.CountByArtisan(ctx, user.ID)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = append(out, toArtisanResponse(user, count))
	}
	return out, nil
}

func (u *ArtisanUsecase) GetArtisan(ctx context.Context, id int64) (ArtisanDetailResponse, error) {
	if id <= 0 {
		return ArtisanDetailResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := u.userRepo.FindArtisanByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ArtisanDetailResponse{}, NewHTTPError(http.StatusNotFound, "artisan not found")
		}
		return ArtisanDetailResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	products, err := u.productRepo.ListByArtisan(ctx, user.ID)
	if err != nil {
		return ArtisanDetailResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ArtisanDetailResponse{
		ArtisanResponse: toArtisanResponse(user, int64(len(products))),
		Products:        products,
	}, nil
}

func toArtisanResponse(user model.User, productCount int64) ArtisanResponse {
	resp := ArtisanResponse{
		ID:           user.ID,
		Name:         user.Name,
		ProfileImage: user.ProfileImage,
		Specialties:  []string{},
		ProductCount: productCount,
	}

	if p := user.ArtisanProfile; p != nil {
		resp.Bio = p.Bio
		resp.Location = p.Location
		resp.Verified = p.Verified
		resp.Rating = p.Rating
		resp.Specialties = splitSpecialties(p.Specialties)
	}
	return resp
}

func splitSpecialties(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
