package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SketchShifter/workshelf_backend/internal/models"
)

// SearchFilter 作品検索の条件
type SearchFilter struct {
	UserID uint
	Type   string
	Tags   []string
}

// WorkRepository 作品に関するデータベース操作を行うインターフェース
type WorkRepository interface {
	CreateWithTags(ctx context.Context, work *models.Work, tagNames []string) error
	FindByID(ctx context.Context, id uint) (*models.Work, error)
	Search(ctx context.Context, filter SearchFilter) ([]models.Work, error)
	DeleteOwned(ctx context.Context, id, userID uint) error
}

// workRepository WorkRepositoryの実装
type workRepository struct {
	db *gorm.DB
}

// NewWorkRepository WorkRepositoryを作成
func NewWorkRepository(db *gorm.DB) WorkRepository {
	return &workRepository{db: db}
}

// preloadTags タグを名前順で読み込む
func preloadTags(db *gorm.DB) *gorm.DB {
	return db.Order("tags.name ASC")
}

// CreateWithTags 作品とタグの関連付けを1トランザクションで作成
func (r *workRepository) CreateWithTags(ctx context.Context, work *models.Work, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(work).Error; err != nil {
			return errors.Wrap(err, "create work")
		}

		tagRepo := NewTagRepository(tx)
		names := DistinctTagNames(tagNames)
		tagIDs := make([]uint, 0, len(names))
		tags := make([]models.Tag, 0, len(names))
		for _, name := range names {
			tag, err := tagRepo.FindOrCreate(ctx, name)
			if err != nil {
				return err
			}
			tagIDs = append(tagIDs, tag.ID)
			tags = append(tags, *tag)
		}

		if err := tagRepo.AttachTagsToWork(ctx, work.ID, tagIDs); err != nil {
			return err
		}
		work.Tags = tags
		return nil
	})
}

// FindByID IDで作品を検索
func (r *workRepository) FindByID(ctx context.Context, id uint) (*models.Work, error) {
	var work models.Work
	if err := r.db.WithContext(ctx).Preload("Tags", preloadTags).First(&work, id).Error; err != nil {
		return nil, err
	}
	return &work, nil
}

// Search 種別とタグで利用者の作品を検索。タグはすべて一致した作品のみ返す (新しい順)
func (r *workRepository) Search(ctx context.Context, filter SearchFilter) ([]models.Work, error) {
	query := r.db.WithContext(ctx).Model(&models.Work{}).
		Where("works.type = ? AND works.user_id = ?", filter.Type, filter.UserID)

	names := DistinctTagNames(filter.Tags)
	if len(names) > 0 {
		sub, args, err := allTagsMatchQuery(names)
		if err != nil {
			return nil, errors.Wrap(err, "build tag filter")
		}
		query = query.Where("works.id IN (?)", gorm.Expr(sub, args...))
	}

	works := make([]models.Work, 0)
	if err := query.
		Preload("Tags", preloadTags).
		Order("works.id DESC").
		Find(&works).Error; err != nil {
		return nil, err
	}

	for i := range works {
		if works[i].Tags == nil {
			works[i].Tags = []models.Tag{}
		}
	}
	return works, nil
}

// DeleteOwned 所有者が一致する作品のみ削除。対象がなければ gorm.ErrRecordNotFound
func (r *workRepository) DeleteOwned(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Work{}).Select("id").Where("id = ? AND user_id = ?", id, userID)
		if err := tx.Where("work_id IN (?)", owned).Delete(&models.WorkTag{}).Error; err != nil {
			return errors.Wrap(err, "delete work tags")
		}

		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Work{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete work")
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
