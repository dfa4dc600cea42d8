package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// デモデータ投入。開発環境のみルーティングされる。
type SeedUsecase struct {
	userRepo     repo.UserRepository
	categoryRepo repo.CategoryRepository
	productRepo  repo.ProductRepository
	hasher       PasswordHasher
}

// DI
func NewSeedUsecase(
	userRepo repo.UserRepository,
	categoryRepo repo.CategoryRepository,
	productRepo repo.ProductRepository,
	hasher PasswordHasher,
) *SeedUsecase {
	return &SeedUsecase{
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		hasher:       hasher,
	}
}

type SeedResult struct {
	Categories int `json:"categories"`
	Artisans   int `json:"artisans"`
	Products   int `json:"products"`
}

// Run は冪等ではない。既にデータがある環境では弾く。
func (u *SeedUsecase) Run(ctx context.Context) (SeedResult, error) {
	existing, err := u.categoryRepo.List(ctx, false)
	if err != nil {
		return SeedResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(existing) > 0 {
		return SeedResult{}, NewHTTPError(http.StatusConflict, "already seeded")
	}

	categories := []model.Category{
		{Name: "Pottery", Description: "Handcrafted ceramics and pottery", Featured: true},
		{Name: "Jewelry", Description: "Unique handmade jewelry", Featured: true},
		{Name: "Textiles", Description: "Woven fabrics and textiles"},
		{Name: "Woodwork", Description: "Carved wood creations"},
		{Name: "Glass Art", Description: "Blown glass art pieces"},
		{Name: "Metalwork", Description: "Forged metal artwork"},
	}
	for _, c := range categories {
		if _, err := u.categoryRepo.Create(ctx, c); err != nil {
			return SeedResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	hashed, err := u.hasher.Hash("password123")
	if err != nil {
		return SeedResult{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	artisans := []model.User{
		{
			Name: "Maria Rodriguez", Email: "maria@example.com", PasswordHash: hashed, IsArtisan: true,
			ArtisanProfile: &model.ArtisanProfile{
				Bio:         "Master potter with 20 years of experience in traditional ceramic techniques.",
				Location:    "Santa Fe, New Mexico",
				Specialties: "Pottery, Ceramics",
				Verified:    true,
				Rating:      4.9,
			},
		},
		{
			Name: "John Smith", Email: "john@example.com", PasswordHash: hashed, IsArtisan: true,
			ArtisanProfile: &model.ArtisanProfile{
				Bio:         "Jewelry designer specializing in contemporary silver work.",
				Location:    "Portland, Oregon",
				Specialties: "Jewelry, Metalwork",
				Verified:    true,
				Rating:      4.8,
			},
		},
		{
			Name: "David Chen", Email: "david@example.com", PasswordHash: hashed, IsArtisan: true,
			ArtisanProfile: &model.ArtisanProfile{
				Bio:         "Sustainable woodworker creating functional art from reclaimed materials.",
				Location:    "Seattle, Washington",
				Specialties: "Woodwork, Furniture",
				Verified:    true,
				Rating:      4.7,
			},
		},
	}

	created := make([]model.User, 0, len(artisans))
	for _, a := range artisans {
		user, err := u.userRepo.Create(ctx, a)
		if err != nil {
			return SeedResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		created = append(created, user)
	}

	// 価格はセント
	products := []model.Product{
		{
			Name: "Handwoven Ceramic Bowl", Category: "Pottery", Price: 8900, OriginalPrice: 12000,
			ArtisanID: created[0].ID, ArtisanName: created[0].Name,
			Description: "A beautiful handwoven ceramic bowl perfect for serving or decoration.",
			Featured:    true, Rating: 4.8, Reviews: 24, InStock: true,
			Tags: "ceramic, bowl, handwoven, kitchen",
		},
		{
			Name: "Silver Wire Earrings", Category: "Jewelry", Price: 4500,
			ArtisanID: created[1].ID, ArtisanName: created[1].Name,
			Description: "Elegant silver wire earrings crafted with attention to detail.",
			Premium:     true, Rating: 4.9, Reviews: 18, InStock: true,
			Tags: "silver, earrings, elegant, jewelry",
		},
		{
			Name: "Wooden Cutting Board", Category: "Woodwork", Price: 6500,
			ArtisanID: created[2].ID, ArtisanName: created[2].Name,
			Description: "Premium wooden cutting board made from sustainable bamboo.",
			Rating:      4.7, Reviews: 31, InStock: true,
			Tags: "wood, kitchen, cutting board, sustainable",
		},
		{
			Name: "Hand-blown Glass Vase", Category: "Glass Art", Price: 12000, OriginalPrice: 15000,
			ArtisanID: created[0].ID, ArtisanName: created[0].Name,
			Description: "Stunning hand-blown glass vase with unique color patterns.",
			Featured:    true, Rating: 4.9, Reviews: 12, InStock: true,
			Tags: "glass, vase, hand-blown, decorative",
		},
		{
			Name: "Leather Journal", Category: "Textiles", Price: 3500,
			ArtisanID: created[1].ID, ArtisanName: created[1].Name,
			Description: "Premium leather journal with handmade paper pages.",
			Rating:      4.6, Reviews: 45, InStock: true,
			Tags: "leather, journal, writing, notebook",
		},
		{
			Name: "Forged Steel Sculpture", Category: "Metalwork", Price: 28000,
			ArtisanID: created[2].ID, ArtisanName: created[2].Name,
			Description: "Abstract steel sculpture perfect for modern home decor.",
			Premium:     true, Rating: 4.8, Reviews: 8, InStock: true,
			Tags: "steel, sculpture, art, modern",
		},
	}
	for _, p := range products {
		if _, err := u.productRepo.Create(ctx, p); err != nil {
			return SeedResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return SeedResult{
		Categories: len(categories),
		Artisans:   len(created),
		Products:   len(products),
	}, nil
}
