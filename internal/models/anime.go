package models

import (
	"time"
)

type Anime struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null;index" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	ReleaseYear   int       `gorm:"index" json:"release_year"`
	CoverImageURL string    `json:"cover_image_url"`
	Language      string    `gorm:"size:30;index" json:"language"`
	AverageRating float64   `gorm:"default:0" json:"average_rating"` // 派生字段，由 RatingService 全量重算
	Genres        []Genre   `gorm:"many2many:anime_genres;" json:"genres"`
	Tags          []Tag     `gorm:"many2many:anime_tags;" json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName 单数表名，`animes` 这种复数形式太别扭
func (Anime) TableName() string {
	return "anime"
}
