package services

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SketchShifter/workshelf_backend/internal/models"
	"github.com/SketchShifter/workshelf_backend/internal/repository"
)

// WorkInput 作品登録の入力
type WorkInput struct {
	PixivID string
	Title   string
	Type    string
	Tags    []string
}

// WorkService 作品に関するサービスインターフェース
type WorkService interface {
	Create(ctx context.Context, userID uint, input WorkInput) (*models.Work, error)
	Search(ctx context.Context, userID uint, workType string, tags []string) ([]models.Work, error)
	Delete(ctx context.Context, id, userID uint) error
}

// workService WorkServiceの実装
type workService struct {
	workRepo repository.WorkRepository
	logger   *zap.Logger
}

// NewWorkService WorkServiceを作成
func NewWorkService(workRepo repository.WorkRepository, logger *zap.Logger) WorkService {
	return &workService{
		workRepo: workRepo,
		logger:   logger.Named("works"),
	}
}

// Create 新しい作品を作成し、タグを関連付ける
func (s *workService) Create(ctx context.Context, userID uint, input WorkInput) (*models.Work, error) {
	if strings.TrimSpace(input.PixivID) == "" || strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Type) == "" {
		return nil, validationError("pixivId, title and type are required")
	}
	for _, name := range input.Tags {
		if strings.TrimSpace(name) == "" {
			return nil, validationError("tag names must not be empty")
		}
	}

	work := &models.Work{
		UserID:  userID,
		PixivID: input.PixivID,
		Title:   input.Title,
		Type:    input.Type,
	}
	if err := s.workRepo.CreateWithTags(ctx, work, input.Tags); err != nil {
		return nil, queryError(err, "create work")
	}

	s.logger.Info("work created",
		zap.Uint("work_id", work.ID),
		zap.Uint("user_id", userID),
		zap.Int("tags", len(work.Tags)),
	)
	return work, nil
}

// Search 種別とタグで作品を検索。タグはすべて含む作品のみ返す
func (s *workService) Search(ctx context.Context, userID uint, workType string, tags []string) ([]models.Work, error) {
	if workType == "" {
		return nil, validationError("type is required")
	}

	works, err := s.workRepo.Search(ctx, repository.SearchFilter{
		UserID: userID,
		Type:   workType,
		Tags:   tags,
	})
	if err != nil {
		return nil, queryError(err, "search works")
	}
	return works, nil
}

// Delete 作品を削除。所有者以外は存在しない作品と同じ扱い
func (s *workService) Delete(ctx context.Context, id, userID uint) error {
	if err := s.workRepo.DeleteOwned(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkNotFound
		}
		return queryError(err, "delete work")
	}

	s.logger.Info("work deleted", zap.Uint("work_id", id), zap.Uint("user_id", userID))
	return nil
}
