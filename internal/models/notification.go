package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypePostReply     NotificationType = "post_reply"
	NotificationTypeCommentReply  NotificationType = "comment_reply"
	NotificationTypeFriendRequest NotificationType = "friend_request"
	NotificationTypeFriendAccept  NotificationType = "friend_accept"
	NotificationTypeSystem        NotificationType = "system"
)

// Notification 站内通知，只追加；除 IsRead 置位外不做修改，不删除
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"` // Receiver
	User      User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ActorID   *uint            `gorm:"index" json:"actor_id"` // Sender
	Actor     User             `gorm:"foreignKey:ActorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"actor"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Content   string           `gorm:"type:text" json:"content"`
	LinkURL   string           `json:"link_url"`
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
