package db

import (
	"aniverse/internal/models"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=aniverse port=5432 sslmode=disable TimeZone=Asia/Shanghai"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	// Seed initial catalog data
	seedCatalog()
}

// Migrate 建表/补列，测试里也用同一份迁移
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Genre{},
		&models.Tag{},
		&models.Anime{},
		&models.Rating{},
		&models.Review{},
		&models.Subcommunity{},
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
		&models.Friendship{},
		&models.DirectMessage{},
		&models.Notification{},
		&models.WatchlistItem{},
	)
}

func seedCatalog() {
	// 检查是否已有条目数据
	var count int64
	DB.Model(&models.Anime{}).Count(&count)
	if count > 0 {
		log.Println("Catalog already seeded, skipping")
		return
	}

	genres := seedGenres(
		"Action", "Comedy", "Drama", "Sci-Fi", "Fantasy",
		"Slice of Life", "Romance", "Thriller", "Adventure",
	)
	tags := seedTags(
		"Mecha", "Magic", "Shounen", "Shoujo", "Isekai",
		"Post-Apocalyptic", "Historical", "School Life", "Vampire",
	)

	sample := []models.Anime{
		{
			Title:         "Code Geass: Lelouch of the Rebellion",
			Description:   "In an alternate timeline, Japan is conquered by the Holy Britannian Empire. Exiled prince Lelouch obtains the power of Geass and leads a rebellion.",
			ReleaseYear:   2006,
			Language:      "Japanese",
			CoverImageURL: "https://cdn.myanimelist.net/images/anime/5/50331.jpg",
			Genres:        pickGenres(genres, "Action", "Sci-Fi", "Drama"),
			Tags:          pickTags(tags, "Mecha", "Magic", "Shounen"),
		},
		{
			Title:         "Attack on Titan",
			Description:   "After his hometown is destroyed, young Eren Jaeger vows to cleanse the earth of the giant Titans that have brought humanity to the brink of extinction.",
			ReleaseYear:   2013,
			Language:      "Japanese",
			CoverImageURL: "https://cdn.myanimelist.net/images/anime/10/47347.jpg",
			Genres:        pickGenres(genres, "Action", "Fantasy", "Drama", "Thriller"),
			Tags:          pickTags(tags, "Post-Apocalyptic", "Shounen"),
		},
		{
			Title:         "K-On!",
			Description:   "Four high school girls join the light music club of Sakuragaoka Girl's High School to save it from being disbanded.",
			ReleaseYear:   2009,
			Language:      "Japanese",
			CoverImageURL: "https://cdn.myanimelist.net/images/anime/10/76120.jpg",
			Genres:        pickGenres(genres, "Slice of Life", "Comedy"),
			Tags:          pickTags(tags, "School Life"),
		},
		{
			Title:         "Your Name.",
			Description:   "Two teenagers share a profound, magical connection upon discovering they are swapping bodies.",
			ReleaseYear:   2016,
			Language:      "Japanese",
			CoverImageURL: "https://cdn.myanimelist.net/images/anime/5/87048.jpg",
			Genres:        pickGenres(genres, "Romance", "Drama", "Fantasy"),
			Tags:          pickTags(tags, "Magic"),
		},
	}

	for _, anime := range sample {
		if err := DB.Create(&anime).Error; err != nil {
			log.Printf("Failed to seed anime %s: %v", anime.Title, err)
		}
	}
	log.Println("Initial catalog created successfully")
}

func seedGenres(names ...string) map[string]models.Genre {
	out := make(map[string]models.Genre, len(names))
	for _, name := range names {
		genre := models.Genre{Name: name}
		if err := DB.Create(&genre).Error; err != nil {
			log.Printf("Failed to create genre %s: %v", name, err)
			continue
		}
		out[name] = genre
	}
	return out
}

func seedTags(names ...string) map[string]models.Tag {
	out := make(map[string]models.Tag, len(names))
	for _, name := range names {
		tag := models.Tag{Name: name}
		if err := DB.Create(&tag).Error; err != nil {
			log.Printf("Failed to create tag %s: %v", name, err)
			continue
		}
		out[name] = tag
	}
	return out
}

func pickGenres(all map[string]models.Genre, names ...string) []models.Genre {
	out := make([]models.Genre, 0, len(names))
	for _, name := range names {
		if g, ok := all[name]; ok {
			out = append(out, g)
		}
	}
	return out
}

func pickTags(all map[string]models.Tag, names ...string) []models.Tag {
	out := make([]models.Tag, 0, len(names))
	for _, name := range names {
		if t, ok := all[name]; ok {
			out = append(out, t)
		}
	}
	return out
}
