package models

import (
	"time"
)

// Work 作品モデル
type Work struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	PixivID   string    `json:"pixiv_id" gorm:"size:64;not null"`
	Title     string    `json:"title" gorm:"not null"`
	Type      string    `json:"type" gorm:"size:64;not null;index"`
	CreatedAt time.Time `json:"created_at"`

	// リレーション
	Tags []Tag `json:"tags" gorm:"many2many:work_tags;"`
}

// All スキーマ作成対象のモデル (work_tags は Work の関連から作成される)
func All() []interface{} {
	return []interface{}{
		&User{},
		&Tag{},
		&Work{},
	}
}
