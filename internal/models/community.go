package models

import (
	"time"
)

// Subcommunity 主题子社区，帖子可以归属其中
type Subcommunity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;unique" json:"name"`
	Description string    `json:"description"`
	CreatorID   uint      `gorm:"not null;index" json:"creator_id"`
	Creator     User      `gorm:"foreignKey:CreatorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"creator"`
	CreatedAt   time.Time `json:"created_at"`
}
