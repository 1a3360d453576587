package repository

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SketchShifter/workshelf_backend/internal/models"
)

// SuggestLimit タグ候補の最大件数
const SuggestLimit = 10

// LIKE のエスケープ文字。どの方言でも同じ書き方ができる文字を使う
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// TagRepository タグに関するデータベース操作を行うインターフェース
type TagRepository interface {
	FindOrCreate(ctx context.Context, name string) (*models.Tag, error)
	FindByName(ctx context.Context, name string) (*models.Tag, error)
	AttachTagsToWork(ctx context.Context, workID uint, tagIDs []uint) error
	GetTagsForWork(ctx context.Context, workID uint) ([]models.Tag, error)
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)
}

// tagRepository TagRepositoryの実装
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository TagRepositoryを作成
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// FindOrCreate タグを検索または作成。
// 同名タグの同時作成はユニーク制約で弾かれ、負けた側は既存のタグを取り直す
func (r *tagRepository) FindOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	tag, err := r.FindByName(ctx, name)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = &models.Tag{Name: name}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(tag)
	if res.Error != nil && !errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return nil, errors.Wrapf(res.Error, "create tag %q", name)
	}
	if res.Error == nil && res.RowsAffected > 0 && tag.ID != 0 {
		return tag, nil
	}

	// 他のリクエストが先に作成した。REPEATABLE READ では通常の読み取りに見えないのでロック読み取りで取り直す
	return r.findByNameLatest(ctx, name)
}

// findByNameLatest ロック読み取りで名前からタグを取得 (SQLite ではロック句は出力されない)
func (r *tagRepository) findByNameLatest(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := lockedByName(r.db.WithContext(ctx), name).First(&tag).Error; err != nil {
		return nil, errors.Wrapf(err, "refetch tag %q", name)
	}
	return &tag, nil
}

// lockedByName 名前で絞り込んだロック読み取り
func lockedByName(db *gorm.DB, name string) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "SHARE"}).Where("name = ?", name)
}

// FindByName 名前でタグを検索 (大文字小文字を区別する完全一致)
func (r *tagRepository) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// AttachTagsToWork 作品にタグを関連付け。既存の組み合わせは無視する
func (r *tagRepository) AttachTagsToWork(ctx context.Context, workID uint, tagIDs []uint) error {
	for _, tagID := range tagIDs {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.WorkTag{WorkID: workID, TagID: tagID}).Error
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Wrapf(err, "attach tag %d to work %d", tagID, workID)
		}
	}
	return nil
}

// GetTagsForWork 作品に関連付けられたタグを取得
func (r *tagRepository) GetTagsForWork(ctx context.Context, workID uint) ([]models.Tag, error) {
	tags := make([]models.Tag, 0)
	if err := r.db.WithContext(ctx).Model(&models.Tag{}).
		Joins("JOIN work_tags ON tags.id = work_tags.tag_id").
		Where("work_tags.work_id = ?", workID).
		Order("tags.name ASC").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Suggest 前方一致 (大文字小文字を区別しない) でタグ名を取得
func (r *tagRepository) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	if limit <= 0 || limit > SuggestLimit {
		limit = SuggestLimit
	}

	pattern := likeEscaper.Replace(strings.ToLower(prefix)) + "%"

	names := make([]string, 0, limit)
	if err := r.db.WithContext(ctx).Model(&models.Tag{}).
		Distinct("name").
		Where("LOWER(name) LIKE ? ESCAPE '"+likeEscape+"'", pattern).
		Order("name ASC").
		Limit(limit).
		Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}
