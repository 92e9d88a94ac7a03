package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag 定义了后台整理用的标签，名称在同一用户下唯一
type Tag struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;uniqueIndex:idx_tag_user_name" json:"user_id"`
	Name      string    `gorm:"size:80;not null;uniqueIndex:idx_tag_user_name" json:"name"`
	Color     string    `gorm:"size:20" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate 在缺少 ID 时生成 UUID
func (t *Tag) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
