package services

import (
	"aniverse/internal/models"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ReviewService 处理番剧长评的发布和查询，投票统一走 VoteService（kind=review）
type ReviewService struct {
	db      *gorm.DB
	ratings *RatingService
}

func NewReviewService(db *gorm.DB, ratings *RatingService) *ReviewService {
	return &ReviewService{db: db, ratings: ratings}
}

// Create 发布评测；作者已有评分时自动关联，便于展示"打了 8 分的长评"
func (s *ReviewService) Create(userID, animeID uint, content string, isSpoiler bool) (uint, error) {
	if strings.TrimSpace(content) == "" {
		return 0, ErrInvalidInput
	}

	var count int64
	if err := s.db.Model(&models.Anime{}).Where("id = ?", animeID).Count(&count).Error; err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, ErrNotFound
	}

	review := models.Review{
		UserID:    userID,
		AnimeID:   animeID,
		Content:   content,
		IsSpoiler: isSpoiler,
	}
	if rating, err := s.ratings.Get(userID, animeID); err == nil && rating != nil {
		review.RatingID = &rating.ID
	}

	if err := s.db.Create(&review).Error; err != nil {
		return 0, err
	}
	return review.ID, nil
}

// ForAnime 返回某番剧的全部评测，新的在前
func (s *ReviewService) ForAnime(animeID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Preload("User").Preload("Rating").
		Where("anime_id = ?", animeID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// Get 按 ID 查评测
func (s *ReviewService) Get(reviewID uint) (*models.Review, error) {
	var review models.Review
	err := s.db.Preload("User").Preload("Rating").First(&review, reviewID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}
