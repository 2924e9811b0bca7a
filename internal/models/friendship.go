package models

import (
	"time"
)

const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
	FriendshipBlocked  = "blocked"
)

// Friendship 用户好友关系，按 (min, max) 规范序存储，一对用户至多一行。
// 不存在行即无关系。InitiatorID 记录产生当前状态的一方：
// pending 时是请求发起者，blocked 时是拉黑者。
type Friendship struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID1     uint       `gorm:"not null;uniqueIndex:idx_friend_pair" json:"user_id_1"` // 较小的用户 ID
	User1       User       `gorm:"foreignKey:UserID1;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user_1"`
	UserID2     uint       `gorm:"not null;uniqueIndex:idx_friend_pair" json:"user_id_2"` // 较大的用户 ID
	User2       User       `gorm:"foreignKey:UserID2;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user_2"`
	InitiatorID uint       `gorm:"not null" json:"initiator_id"`
	Status      string     `gorm:"size:10;not null;index" json:"status"` // pending, accepted, blocked
	RequestedAt time.Time  `json:"requested_at"`
	AcceptedAt  *time.Time `json:"accepted_at"`
}

// EnsureCanonicalOrder 保证 UserID1 < UserID2，创建前调用
func (f *Friendship) EnsureCanonicalOrder() {
	if f.UserID1 > f.UserID2 {
		f.UserID1, f.UserID2 = f.UserID2, f.UserID1
	}
}

// OtherID 返回关系中 userID 的对端
func (f *Friendship) OtherID(userID uint) uint {
	if f.UserID1 == userID {
		return f.UserID2
	}
	return f.UserID1
}
