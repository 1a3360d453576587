package services

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/SketchShifter/workshelf_backend/internal/models"
	"github.com/SketchShifter/workshelf_backend/internal/repository"
)

// UserService ユーザーに関するサービスインターフェース
type UserService interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// userService UserServiceの実装
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService UserServiceを作成
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

// GetByID IDでユーザーを取得
func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, queryError(err, "find user")
	}
	return user, nil
}
