package services

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SketchShifter/workshelf_backend/internal/config"
	"github.com/SketchShifter/workshelf_backend/internal/models"
	"github.com/SketchShifter/workshelf_backend/internal/repository"
	"github.com/SketchShifter/workshelf_backend/internal/utils"
)

// TokenVerifier トークンを検証して利用者IDを返す
type TokenVerifier interface {
	VerifyToken(tokenString string) (uint, error)
}

// AuthService 認証に関するサービスインターフェース
type AuthService interface {
	TokenVerifier
	Signup(ctx context.Context, username, password string) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
}

// authService AuthServiceの実装
type authService struct {
	userRepo   repository.UserRepository
	jwt        *utils.JWTManager
	bcryptCost int
}

// NewAuthService AuthServiceを作成
func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwt:        utils.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Signup ユーザー登録
func (s *authService) Signup(ctx context.Context, username, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", validationError("username and password are required")
	}

	// ユーザー名が既に使用されているか確認
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", queryError(err, "find user")
	}

	// パスワードをハッシュ化
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", errors.Wrap(err, "hash password")
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// 同時登録でユニーク制約に負けた場合
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrUsernameTaken
		}
		return nil, "", queryError(err, "create user")
	}

	token, err := s.jwt.Generate(user.ID)
	if err != nil {
		return nil, "", errors.Wrap(err, "generate token")
	}

	return user, token, nil
}

// Login ログイン
func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", queryError(err, "find user")
	}

	// パスワードを検証
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(user.ID)
	if err != nil {
		return nil, "", errors.Wrap(err, "generate token")
	}

	return user, token, nil
}

// VerifyToken トークンを検証
func (s *authService) VerifyToken(tokenString string) (uint, error) {
	userID, err := s.jwt.Validate(tokenString)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
