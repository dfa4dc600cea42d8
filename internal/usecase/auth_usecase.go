package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/validator"

	"golang.org/x/crypto/bcrypt"
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(user model.User, now time.Time) (token string, expiresAt time.Time, err error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type BcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

type AuthUsecase struct {
	userRepo repo.UserRepository
	hasher   PasswordHasher
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
}

// DI
func NewAuthUsecase(
	userRepo repo.UserRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	IsArtisan bool
}

type LoginInput struct {
	Email    string
	Password string
}

// パスワードを含めないユーザー表現
type UserResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	IsArtisan    bool      `json:"is_artisan"`
	ProfileImage string    `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// handlerがCookieに詰めるためにtokenとexpiresも返す
type AuthOutput struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"-"`
	ExpiresAt time.Time    `json:"-"`
}

// 会員登録実行
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (AuthOutput, error) {
	if err := validator.ValidateRegister(in.Name, in.Email, in.Password); err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// email重複チェック
	if _, err := u.userRepo.FindByEmail(ctx, in.Email); err == nil {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "user already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	created, err := u.userRepo.Create(ctx, model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hashed,
		IsArtisan:    in.IsArtisan,
	})
	if err != nil {
		// uniqueインデックスとの競合（重複チェック後の割り込み）
		if errors.Is(err, repo.ErrDuplicate) {
			return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "user already exists")
		}
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.issueFor(created)
}

// ログイン処理を実行する
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthOutput, error) {
	if err := validator.ValidateLogin(in.Email, in.Password); err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	return u.issueFor(user)
}

// 現在のユーザー情報を返す
func (u *AuthUsecase) Me(ctx context.Context, userID int64) (UserResponse, error) {
	if userID <= 0 {
		return UserResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return UserResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		return UserResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toUserResponse(user), nil
}

func (u *AuthUsecase) issueFor(user model.User) (AuthOutput, error) {
	token, expiresAt, err := u.issuer.Issue(user, u.clock.Now())
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthOutput{
		User:      toUserResponse(user),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func toUserResponse(user model.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		IsArtisan:    user.IsArtisan,
		ProfileImage: user.ProfileImage,
		CreatedAt:    user.CreatedAt,
	}
}
