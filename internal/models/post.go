package models

import (
	"time"
)

const (
	PostTypeDiscussion = "discussion"
	PostTypeMeme       = "meme"
	PostTypeTheory     = "theory"
)

type Post struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	UserID         uint          `gorm:"not null;index" json:"user_id"`
	User           User          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	SubcommunityID *uint         `gorm:"index" json:"subcommunity_id"` // Optional, 全站帖无归属
	Subcommunity   *Subcommunity `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"subcommunity"`
	Title          string        `gorm:"not null" json:"title"`
	Content        string        `gorm:"type:text" json:"content"`
	PostType       string        `gorm:"size:20;default:'discussion'" json:"post_type"` // discussion, meme, theory
	Upvotes        int           `gorm:"default:0" json:"upvotes"` // 物化计数，投票后全量重算
	Downvotes      int           `gorm:"default:0" json:"downvotes"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	// 非数据库字段，用于查询时填充
	CommentCount int `gorm:"-" json:"comment_count"`
}
