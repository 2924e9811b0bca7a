package models

import (
	"time"
)

const (
	VoteKindPost   = "post"
	VoteKindReview = "review"

	PolarityUp   = "up"
	PolarityDown = "down"
	PolarityNone = "" // 无投票状态，不落库，仅用于返回值
)

// Vote 可撤销的赞/踩记录，(user_id, target_id, target_kind) 唯一。
// 同向再投删除记录（toggle off），反向改投原地更新。
type Vote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_vote_actor_target" json:"user_id"`
	TargetID   uint      `gorm:"not null;index;uniqueIndex:idx_vote_actor_target" json:"target_id"`
	TargetKind string    `gorm:"size:10;not null;uniqueIndex:idx_vote_actor_target" json:"target_kind"` // post, review
	Polarity   string    `gorm:"size:5;not null" json:"polarity"`                                       // up, down
	CreatedAt  time.Time `json:"created_at"`
}
