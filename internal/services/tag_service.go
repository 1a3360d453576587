package services

import (
	"context"

	"github.com/SketchShifter/workshelf_backend/internal/repository"
)

// TagService タグに関するサービスインターフェース
type TagService interface {
	Suggest(ctx context.Context, prefix string) ([]string, error)
}

// tagService TagServiceの実装
type tagService struct {
	tagRepo repository.TagRepository
}

// NewTagService TagServiceを作成
func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{
		tagRepo: tagRepo,
	}
}

// Suggest 前方一致でタグ名の候補を最大10件取得
func (s *tagService) Suggest(ctx context.Context, prefix string) ([]string, error) {
	names, err := s.tagRepo.Suggest(ctx, prefix, repository.SuggestLimit)
	if err != nil {
		return nil, queryError(err, "suggest tags")
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
