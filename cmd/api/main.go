package main

import (
	"log"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/cache"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(user model.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":        strconv.FormatInt(user.ID, 10),
		"email":      user.Email,
		"is_artisan": user.IsArtisan,
		"jti":        uuid.NewString(),
		"iat":        now.Unix(),
		"exp":        expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envは無ければ無いで良い（本番は環境変数で渡す）
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.ArtisanProfile{},
		&model.Category{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)

	//カートキャッシュ（REDIS_ADDRが空なら無効）
	var cartCache cache.CartCache = cache.NewNoopCache()
	if cfg.RedisAddr != "" {
		cartCache = cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}

	//usecaseに渡す部品
	clock := &realClock{}
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 7 * 24 * time.Hour,
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, hasher, verifier, issuer, clock)
	productUC := usecase.NewProductUsecase(productRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	artisanUC := usecase.NewArtisanUsecase(userRepo, productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo, cartCache)
	seedUC := usecase.NewSeedUsecase(userRepo, categoryRepo, productRepo, hasher)

	//Handler生成
	handlers := server.Handlers{
		Auth:      handler.NewAuthHandler(authUC, cartUC, cfg),
		Product:   handler.NewProductHandler(productUC),
		Category:  handler.NewCategoryHandler(categoryUC),
		Artisan:   handler.NewArtisanHandler(artisanUC),
		Cart:      handler.NewCartHandler(cartUC, cfg),
		GuestCart: handler.NewGuestCartHandler(cfg),
		Seed:      handler.NewSeedHandler(seedUC, cfg),
	}

	//Server起動
	e := server.New(cfg, handlers)
	if err := server.Start(e, cfg); err != nil {
		log.Fatal(err)
	}
}
