package models

import (
	"time"
)

// Tag タグモデル。名前は全ユーザーで共有される
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;size:191;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkTag 作品とタグの中間テーブル
type WorkTag struct {
	WorkID uint `gorm:"primaryKey"`
	TagID  uint `gorm:"primaryKey"`
}

// TableName テーブル名指定
func (WorkTag) TableName() string {
	return "work_tags"
}

// TagNames タグ名の一覧を返す。タグがない場合は空スライス
func TagNames(tags []Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}
