package services

import (
	"aniverse/internal/models"
	"errors"

	"gorm.io/gorm"
)

var watchStatuses = map[string]bool{
	models.WatchStatusPlanToWatch: true,
	models.WatchStatusWatching:    true,
	models.WatchStatusCompleted:   true,
	models.WatchStatusDropped:     true,
	models.WatchStatusBookmarked:  true,
}

// WatchlistService 维护用户的追番清单
type WatchlistService struct {
	db *gorm.DB
}

func NewWatchlistService(db *gorm.DB) *WatchlistService {
	return &WatchlistService{db: db}
}

// Set 添加或更新追番状态（upsert），返回条目 ID
func (s *WatchlistService) Set(userID, animeID uint, status string) (uint, error) {
	if !watchStatuses[status] {
		return 0, ErrInvalidInput
	}
	var count int64
	if err := s.db.Model(&models.Anime{}).Where("id = ?", animeID).Count(&count).Error; err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, ErrNotFound
	}

	var existing models.WatchlistItem
	err := s.db.Where("user_id = ? AND anime_id = ?", userID, animeID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item := models.WatchlistItem{UserID: userID, AnimeID: animeID, Status: status}
		if err := s.db.Create(&item).Error; err != nil {
			return 0, err
		}
		return item.ID, nil
	}
	if err != nil {
		return 0, err
	}
	if err := s.db.Model(&existing).Update("status", status).Error; err != nil {
		return 0, err
	}
	return existing.ID, nil
}

// Remove 把番剧从清单里移除，条目不存在时静默成功
func (s *WatchlistService) Remove(userID, animeID uint) error {
	return s.db.Where("user_id = ? AND anime_id = ?", userID, animeID).
		Delete(&models.WatchlistItem{}).Error
}

// List 返回用户的清单，statusFilter 非空时只取该状态，按更新时间倒序
func (s *WatchlistService) List(userID uint, statusFilter string) ([]models.WatchlistItem, error) {
	query := s.db.Preload("Anime").Where("user_id = ?", userID)
	if statusFilter != "" {
		query = query.Where("status = ?", statusFilter)
	}
	var items []models.WatchlistItem
	err := query.Order("updated_at DESC").Find(&items).Error
	return items, err
}

// Status 返回用户对某番剧的追番状态，不在清单里返回空串
func (s *WatchlistService) Status(userID, animeID uint) (string, error) {
	var item models.WatchlistItem
	err := s.db.Where("user_id = ? AND anime_id = ?", userID, animeID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return item.Status, nil
}
