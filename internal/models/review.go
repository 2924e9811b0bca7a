package models

import (
	"html/template"
	"time"
)

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	AnimeID   uint      `gorm:"not null;index" json:"anime_id"`
	Anime     Anime     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"anime"`
	RatingID  *uint     `json:"rating_id"` // 发布时若作者已有评分则关联
	Rating    *Rating   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"rating"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	IsSpoiler bool      `gorm:"default:false" json:"is_spoiler"`
	Upvotes   int       `gorm:"default:0" json:"upvotes"`   // 物化计数，投票后全量重算
	Downvotes int       `gorm:"default:0" json:"downvotes"` // 同上
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 非数据库字段，渲染前由 handler 填充净化后的 HTML
	ContentHTML template.HTML `gorm:"-" json:"-"`
}
