package services

import (
	"aniverse/internal/models"
	"sort"
	"time"

	"gorm.io/gorm"
)

// ActivityItem 好友动态里的一条记录
type ActivityItem struct {
	Kind      string       `json:"kind"` // rating, review
	User      models.User  `json:"user"`
	Anime     models.Anime `json:"anime"`
	Score     int          `json:"score"`     // rating 专用
	ReviewID  uint         `json:"review_id"` // review 专用
	CreatedAt time.Time    `json:"created_at"`
}

// ActivityService 聚合好友最近的评分和评测动态
type ActivityService struct {
	db      *gorm.DB
	friends *FriendshipService
}

func NewActivityService(db *gorm.DB, friends *FriendshipService) *ActivityService {
	return &ActivityService{db: db, friends: friends}
}

// FriendsFeed 返回用户好友最近的动态，按时间倒序，最多 limit 条
func (s *ActivityService) FriendsFeed(userID uint, limit int) ([]ActivityItem, error) {
	if limit <= 0 {
		limit = 50
	}
	ids, err := s.friends.FriendIDs(userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var ratings []models.Rating
	if err := s.db.Preload("User").Preload("Anime").
		Where("user_id IN ?", ids).
		Order("updated_at DESC").Limit(limit).
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	var reviews []models.Review
	if err := s.db.Preload("User").Preload("Anime").
		Where("user_id IN ?", ids).
		Order("created_at DESC").Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, err
	}

	items := make([]ActivityItem, 0, len(ratings)+len(reviews))
	for _, r := range ratings {
		items = append(items, ActivityItem{
			Kind:      "rating",
			User:      r.User,
			Anime:     r.Anime,
			Score:     r.Score,
			CreatedAt: r.UpdatedAt,
		})
	}
	for _, r := range reviews {
		items = append(items, ActivityItem{
			Kind:      "review",
			User:      r.User,
			Anime:     r.Anime,
			ReviewID:  r.ID,
			CreatedAt: r.CreatedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
