package models

import (
	"html/template"
	"time"
)

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ParentID  *uint     `gorm:"index" json:"parent_id"` // Nullable for top-level comments
	Parent    *Comment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"parent"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	// 评论发布后不可编辑，无 UpdatedAt

	// 非数据库字段，CommentService.Thread 填充
	Replies []*Comment `gorm:"-" json:"replies"`
	// 非数据库字段，渲染前由 handler 填充净化后的 HTML
	ContentHTML template.HTML `gorm:"-" json:"-"`
}
