package services

import (
	"fmt"
	"testing"

	"aniverse/internal/db"
	"aniverse/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存库，结构走和生产一致的迁移
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func createUser(t *testing.T, conn *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return &user
}

func createAnime(t *testing.T, conn *gorm.DB, title string) *models.Anime {
	t.Helper()
	anime := models.Anime{Title: title, ReleaseYear: 2020}
	if err := conn.Create(&anime).Error; err != nil {
		t.Fatalf("create anime %s: %v", title, err)
	}
	return &anime
}

func createPost(t *testing.T, conn *gorm.DB, userID uint, title string) *models.Post {
	t.Helper()
	post := models.Post{UserID: userID, Title: title, Content: "content", PostType: models.PostTypeDiscussion}
	if err := conn.Create(&post).Error; err != nil {
		t.Fatalf("create post %s: %v", title, err)
	}
	return &post
}
