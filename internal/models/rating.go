package models

import (
	"time"
)

// Rating 用户对番剧的评分，(user_id, anime_id) 唯一，重复提交走更新
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_anime_rating" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	AnimeID   uint      `gorm:"not null;index;uniqueIndex:idx_user_anime_rating" json:"anime_id"`
	Anime     Anime     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"anime"`
	Score     int       `gorm:"not null" json:"score"` // 1-10
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
