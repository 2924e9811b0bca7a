package models

import (
	"time"
)

const (
	WatchStatusPlanToWatch = "plan_to_watch"
	WatchStatusWatching    = "watching"
	WatchStatusCompleted   = "completed"
	WatchStatusDropped     = "dropped"
	WatchStatusBookmarked  = "bookmarked"
)

// WatchlistItem 追番清单条目，(user_id, anime_id) 唯一，重复提交更新状态
type WatchlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_anime_watch" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	AnimeID   uint      `gorm:"not null;index;uniqueIndex:idx_user_anime_watch" json:"anime_id"`
	Anime     Anime     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"anime"`
	Status    string    `gorm:"size:20;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"` // 状态变更时间
}
