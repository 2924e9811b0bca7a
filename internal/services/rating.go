package services

import (
	"aniverse/internal/models"
	"errors"

	"gorm.io/gorm"
)

const (
	MinScore = 1
	MaxScore = 10
)

// RatingService 维护用户评分和番剧的平均分。
// 平均分是物化视图：每次评分变更后在同一事务内对该番剧的全部评分行
// 做一次 AVG 全量重算写回，不做增量滑动平均，以免漏更新或并发乱序造成漂移。
// 单部番剧的评分量相对条目总量很小，O(n) 扫描可以接受。
type RatingService struct {
	db *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// Submit 提交评分，已有评分则更新分值和时间（upsert），返回评分记录 ID
func (s *RatingService) Submit(raterID, animeID uint, score int) (uint, error) {
	if score < MinScore || score > MaxScore {
		return 0, ErrInvalidInput
	}

	var count int64
	if err := s.db.Model(&models.Anime{}).Where("id = ?", animeID).Count(&count).Error; err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, ErrNotFound
	}

	var ratingID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Rating
		err := tx.Where("user_id = ? AND anime_id = ?", raterID, animeID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			rating := models.Rating{UserID: raterID, AnimeID: animeID, Score: score}
			if err := tx.Create(&rating).Error; err != nil {
				return err
			}
			ratingID = rating.ID
		case err != nil:
			return err
		default:
			if err := tx.Model(&existing).Update("score", score).Error; err != nil {
				return err
			}
			ratingID = existing.ID
		}
		return recomputeAverage(tx, animeID)
	})
	if err != nil {
		return 0, err
	}
	return ratingID, nil
}

// Get 返回用户对某番剧的评分记录，没有则返回 nil
func (s *RatingService) Get(raterID, animeID uint) (*models.Rating, error) {
	var rating models.Rating
	err := s.db.Where("user_id = ? AND anime_id = ?", raterID, animeID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// recomputeAverage 全量重算番剧平均分并写回，无评分时为 0
func recomputeAverage(tx *gorm.DB, animeID uint) error {
	var avg float64
	if err := tx.Model(&models.Rating{}).
		Where("anime_id = ?", animeID).
		Select("COALESCE(AVG(score), 0)").
		Scan(&avg).Error; err != nil {
		return err
	}
	return tx.Model(&models.Anime{}).Where("id = ?", animeID).
		Update("average_rating", avg).Error
}
