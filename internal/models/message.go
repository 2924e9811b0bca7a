package models

import (
	"time"
)

type DirectMessage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"not null;index" json:"sender_id"`
	Sender     User      `gorm:"foreignKey:SenderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sender"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	Receiver   User      `gorm:"foreignKey:ReceiverID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"receiver"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsRead     bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// ConversationPreview 会话列表用的聚合视图，不对应数据表
type ConversationPreview struct {
	OtherUserID   uint      `json:"other_user_id"`
	OtherUsername string    `json:"other_username"`
	OtherAvatar   string    `json:"other_avatar"`
	LastContent   string    `json:"last_content"`
	LastSentAt    time.Time `json:"last_sent_at"`
	UnreadCount   int64     `json:"unread_count"`
}
